package domain

import "time"

type ContractStatus string

const (
	ContractStatusProcessing ContractStatus = "PROCESSING"
	ContractStatusRenting    ContractStatus = "RENTING"
	ContractStatusFinished   ContractStatus = "FINISHED"
	ContractStatusCancelled  ContractStatus = "CANCELLED"
)

// Contract is the provider-facing settlement record opened once a booking's
// payment is confirmed.
type Contract struct {
	ID                  string         `json:"id"`
	BookingID           string         `json:"booking_id"`
	ProviderID          string         `json:"provider_id"`
	Status              ContractStatus `json:"status"`
	CostSettlementCents int64          `json:"cost_settlement_cents"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// FinalContract is the immutable closing record, created exactly once per
// finished contract.
type FinalContract struct {
	ID                  string    `json:"id"`
	ContractID          string    `json:"contract_id"`
	TimeFinish          time.Time `json:"time_finish"`
	CostSettlementCents int64     `json:"cost_settlement_cents"`
	Note                string    `json:"note"`
	CreatedAt           time.Time `json:"created_at"`
}
