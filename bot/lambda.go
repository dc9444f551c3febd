package bot

// LambdaEvent is the payload of a Lambda invocation. When ReplyChannel is
// set the answer is also sent there over NATS.
type LambdaEvent struct {
	SolveRequest
	RequestID    string `json:"request_id,omitempty"`
	ReplyChannel string `json:"reply_channel,omitempty"`
}
