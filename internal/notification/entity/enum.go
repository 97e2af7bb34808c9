package entity

// Kind identifies the template a message was rendered from.
type Kind int16

const (
	KindUnknown   Kind = 0
	KindWelcome   Kind = 1
	KindBroadcast Kind = 2
	KindTest      Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindWelcome:
		return "welcome"
	case KindBroadcast:
		return "broadcast"
	case KindTest:
		return "test"
	default:
		return "unknown"
	}
}
