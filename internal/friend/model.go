package friend

import (
	"strconv"
	"time"
)

type RequestStatus int

const (
	Pending RequestStatus = iota
	Accepted
	Rejected
)

func (s RequestStatus) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Accepted:
		return "Accepted"
	case Rejected:
		return "Rejected"
	default:
		return "RequestStatus(" + strconv.Itoa(int(s)) + ")"
	}
}

// Direction selects which side of a friend request the caller is on.
type Direction string

const (
	Incoming Direction = "incoming"
	Outgoing Direction = "outgoing"
)

type Request struct {
	ID           int64
	SenderID     int64
	SenderNick   string
	ReceiverID   int64
	ReceiverNick string
	Message      *string
	Status       RequestStatus
	CreatedAt    time.Time
	RespondedAt  *time.Time
}

type Friend struct {
	UserID int64
	Nick   string
	Since  time.Time
}
