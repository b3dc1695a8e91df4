package network

import (
	"github.com/bitfsorg/distributor-go/distributor"
)

// Service is everything the Distributor contract handle needs from a
// network: get methods, message sends and account balances.
type Service interface {
	distributor.Actor
	distributor.BalanceReader
}
