package webhook

// Event is the inbound message envelope delivered by the messaging gateway.
type Event struct {
	InstanceID string  `json:"instanceId"`
	Sender     string  `json:"sender"`
	PushName   string  `json:"pushName"`
	FromMe     bool    `json:"fromMe"`
	Message    Message `json:"message"`
}

// Message mirrors the gateway payload: exactly one of the descriptors is
// expected to be set, and classification inspects which.
type Message struct {
	Conversation    string    `json:"conversation,omitempty"`
	ImageMessage    *Media    `json:"imageMessage,omitempty"`
	AudioMessage    *Media    `json:"audioMessage,omitempty"`
	DocumentMessage *Document `json:"documentMessage,omitempty"`
}

type Media struct {
	URL      string `json:"url"`
	MimeType string `json:"mimetype"`
	Caption  string `json:"caption,omitempty"`
	Seconds  int    `json:"seconds,omitempty"`
}

type Document struct {
	URL      string `json:"url"`
	MimeType string `json:"mimetype"`
	FileName string `json:"fileName"`
}

// Kind is the classified message type.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindImage
	KindAudio
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindAudio:
		return "audio"
	case KindDocument:
		return "document"
	default:
		return "unknown"
	}
}

// Classify picks exactly one handler kind from the payload shape. Media
// descriptors take precedence over text so captioned media is not treated as
// a plain text message.
func Classify(ev Event) Kind {
	switch {
	case ev.Message.AudioMessage != nil:
		return KindAudio
	case ev.Message.ImageMessage != nil:
		return KindImage
	case ev.Message.DocumentMessage != nil:
		return KindDocument
	case ev.Message.Conversation != "":
		return KindText
	default:
		return KindUnknown
	}
}
