package domain

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is an inline message attached to a rendered view.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}
