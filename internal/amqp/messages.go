package amqp

import (
	"encoding/json"
	"time"
)

// ReportExportMessage asks the export worker to write an archived report
// out to a file. It carries only the archive ID; the worker fetches the
// payload from the archive.
type ReportExportMessage struct {
	ReportID  int64     `json:"report_id"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

func NewReportExportMessage(reportID int64, kind string) *ReportExportMessage {
	return &ReportExportMessage{ReportID: reportID, Kind: kind, Timestamp: time.Now()}
}

func (m *ReportExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportExportMessageFromJSON(data []byte) (*ReportExportMessage, error) {
	var msg ReportExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
