package utils

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// GlobalPointer reads the pointer position from the X server. It is used in
// wallpaper mode, where the window sits below every other window and never
// receives pointer events of its own.
type GlobalPointer struct {
	conn *xgb.Conn
	root xproto.Window
}

// NewGlobalPointer connects to the display named by $DISPLAY.
func NewGlobalPointer() (*GlobalPointer, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	return &GlobalPointer{
		conn: conn,
		root: setup.DefaultScreen(conn).Root,
	}, nil
}

// Position returns the pointer position relative to the root window and
// whether any button is held down.
func (g *GlobalPointer) Position() (x, y int, pressed bool, err error) {
	reply, err := xproto.QueryPointer(g.conn, g.root).Reply()
	if err != nil {
		return 0, 0, false, err
	}

	const buttonMask = xproto.KeyButMaskButton1 | xproto.KeyButMaskButton2 | xproto.KeyButMaskButton3
	return int(reply.RootX), int(reply.RootY), reply.Mask&buttonMask != 0, nil
}

func (g *GlobalPointer) Close() {
	if g.conn != nil {
		g.conn.Close()
		g.conn = nil
	}
}
