package response

// Envelope 所有 JSON 接口统一的返回结构
type Envelope struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Success(data any, message string) *Envelope {
	return &Envelope{
		OK:      true,
		Message: message,
		Data:    data,
	}
}

func Error(message string, data any) *Envelope {
	return &Envelope{
		OK:      false,
		Message: message,
		Data:    data,
	}
}
