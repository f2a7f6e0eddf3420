package mcp

// Message is a single JSON-RPC 2.0 frame on the stdio transport.
// Requests carry a method and an id, notifications a method only, and
// responses an id with either a result or an error.
type Message struct {
	Jsonrpc string      `json:"jsonrpc"`
	Id      interface{} `json:"id,omitempty"`
	Method  string      `json:"method,omitempty"`
	Params  interface{} `json:"params,omitempty"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

// RPCError is the error member of a response. Tool handlers may return
// one directly to control the code sent back to the client.
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *RPCError) Error() string { return e.Message }

// JSON-RPC 2.0 error codes.
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

// NewErrorMessage builds an error response for the given request id.
func NewErrorMessage(id interface{}, code int, message string, data interface{}) *Message {
	return &Message{
		Jsonrpc: "2.0",
		Id:      id,
		Error:   &RPCError{Code: code, Message: message, Data: data},
	}
}

// NewResultMessage builds a successful response for the given request id.
func NewResultMessage(id interface{}, result interface{}) *Message {
	return &Message{Jsonrpc: "2.0", Id: id, Result: result}
}

// NewNotificationMessage builds a notification, which carries no id and
// expects no reply.
func NewNotificationMessage(method string, params interface{}) *Message {
	return &Message{Jsonrpc: "2.0", Method: method, Params: params}
}

func (m *Message) IsRequest() bool      { return m.Method != "" && m.Id != nil }
func (m *Message) IsNotification() bool { return m.Method != "" && m.Id == nil }
