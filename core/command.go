package core

// Command types, matching the lower-case tokens of the wire format.
const (
	DepositCommandType    = "deposit"
	WithdrawCommandType   = "withdraw"
	DisputeCommandType    = "dispute"
	ResolveCommandType    = "resolve"
	ChargebackCommandType = "chargeback"
)

// CommandType is the string identifier of a command variant.
type CommandType = string

// Command represents the intent to change one account's state. It is
// validated by Account.Handle before producing any events.
//
// Amount is present only for deposit and withdraw; nil means absent.
// For dispute, resolve and chargeback, Tx refers to a prior deposit or
// withdraw transaction.
type Command struct {
	Type   CommandType
	Client ClientID
	Tx     TransactionID
	Amount *Money
}

// BuildDepositCommand creates a deposit Command.
func BuildDepositCommand(client ClientID, tx TransactionID, amount Money) Command {
	return Command{Type: DepositCommandType, Client: client, Tx: tx, Amount: &amount}
}

// BuildWithdrawCommand creates a withdraw Command.
func BuildWithdrawCommand(client ClientID, tx TransactionID, amount Money) Command {
	return Command{Type: WithdrawCommandType, Client: client, Tx: tx, Amount: &amount}
}

// BuildDisputeCommand creates a dispute Command referring to a genesis transaction.
func BuildDisputeCommand(client ClientID, tx TransactionID) Command {
	return Command{Type: DisputeCommandType, Client: client, Tx: tx}
}

// BuildResolveCommand creates a resolve Command referring to a disputed transaction.
func BuildResolveCommand(client ClientID, tx TransactionID) Command {
	return Command{Type: ResolveCommandType, Client: client, Tx: tx}
}

// BuildChargebackCommand creates a chargeback Command referring to a disputed transaction.
func BuildChargebackCommand(client ClientID, tx TransactionID) Command {
	return Command{Type: ChargebackCommandType, Client: client, Tx: tx}
}
