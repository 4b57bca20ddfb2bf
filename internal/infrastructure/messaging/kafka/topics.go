package kafka

// Topic names for banking notification events. These are downstream of
// the in-memory ledger, never a source of truth for it.
const (
	TopicUserCreated           = "banking.users.created"
	TopicTransactionDeposit    = "banking.transactions.deposit"
	TopicTransactionWithdrawal = "banking.transactions.withdrawal"
	TopicTransactionTransfer   = "banking.transactions.transfer"
	TopicOperationFailed       = "banking.operations.failed"
)

// GetAllTopics returns list of all topics
func GetAllTopics() []string {
	return []string{
		TopicUserCreated,
		TopicTransactionDeposit,
		TopicTransactionWithdrawal,
		TopicTransactionTransfer,
		TopicOperationFailed,
	}
}
