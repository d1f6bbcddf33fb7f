package cursor

import "regexp"

const MobileBreakpoint = 768

// Tri is a capability signal that may be unavailable on the host.
type Tri int

const (
	Unknown Tri = iota
	No
	Yes
)

// Signals are the inputs to modality detection.
type Signals struct {
	Touch       Tri // a touch input device is present
	FinePointer Tri // a mouse or trackpad is present
	UserAgent   string
	Width       float64
}

type Modality int

const (
	ModalityPointer Modality = iota
	ModalityTouchOnly
)

func (m Modality) String() string {
	if m == ModalityTouchOnly {
		return "touch-only"
	}
	return "pointer"
}

var mobileAgent = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// DetectModality decides whether the follower should run. Capability signals
// win: a host without touch always gets the follower and a touch host without
// a fine pointer never does. A host with both falls back to the viewport
// width. Only when touch support is unknown are the user agent and then the
// width consulted.
func DetectModality(s Signals) Modality {
	narrow := s.Width > 0 && s.Width < MobileBreakpoint
	switch s.Touch {
	case No:
		return ModalityPointer
	case Yes:
		if s.FinePointer != Yes || narrow {
			return ModalityTouchOnly
		}
		return ModalityPointer
	}
	if s.UserAgent != "" && mobileAgent.MatchString(s.UserAgent) {
		return ModalityTouchOnly
	}
	if narrow {
		return ModalityTouchOnly
	}
	return ModalityPointer
}
