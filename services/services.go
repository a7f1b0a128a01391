package services

import (
	"time"

	"github.com/veridex/lookup-gateway/lookup"
	"github.com/veridex/lookup-gateway/metrics"
	"github.com/veridex/lookup-gateway/repositories"
)

// Services holds all service instances
type Services struct {
	Identity   IdentityService
	Ledger     LedgerService
	DenyList   DenyListService
	Gatekeeper GatekeeperService
	Accounts   AccountService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, lookupClient lookup.Client, m *metrics.Metrics, lookupTimeout time.Duration) *Services {
	ledger := NewLedgerService(repos.Accounts)
	denyList := NewDenyListService(repos.Protected)

	return &Services{
		Identity:   NewIdentityService(repos.Accounts),
		Ledger:     ledger,
		DenyList:   denyList,
		Gatekeeper: NewGatekeeperService(repos.Accounts, repos.Audit, ledger, denyList, lookupClient, m, lookupTimeout),
		Accounts:   NewAccountService(repos.Accounts, repos.Audit),
	}
}
