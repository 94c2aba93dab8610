// ABOUTME: Call log model mirroring the device call history
// ABOUTME: Append-mostly; only the analyzed flag changes after insert
package models

// Call types as reported by the device call log.
const (
	CallIncoming = "incoming"
	CallOutgoing = "outgoing"
	CallMissed   = "missed"
)

// CallLog is one call history entry. CallDate is epoch milliseconds,
// Duration is seconds. IsAnalyzed is set once a downstream consumer
// (summary or narrative generation) has processed the entry.
type CallLog struct {
	ID          int64  `json:"id"`
	PhoneNumber string `json:"phone_number"`
	ContactName string `json:"contact_name,omitempty"`
	CallType    string `json:"call_type"`
	CallDate    int64  `json:"call_date"`
	Duration    int64  `json:"duration"`
	IsAnalyzed  bool   `json:"is_analyzed"`
}
