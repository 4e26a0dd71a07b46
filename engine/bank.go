package engine

import (
	"sync"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/types"
)

// Bank is the value-movement capability injected into the bidding and
// settlement paths. Implementations must make each Move atomic: either both
// sides change or neither does.
type Bank interface {
	Move(from, to string, amount math.Int) error
	Balance(account string) math.Int
}

// TokenAccountResolver reports the owner of a bidder's receiving token
// account, if the account still exists. Settlement uses it to decide whether
// the best bidder can still be the fast-fill beneficiary.
type TokenAccountResolver interface {
	Owner(tokenAccount string) (string, bool)
}

// Messenger receives encoded Fill payloads for cross-chain delivery. The
// bridge itself is an external collaborator.
type Messenger interface {
	SendFill(payload []byte) error
}

// MemoryBank is an in-memory ledger. It backs tests and local runs; a
// production deployment injects the host ledger's custody primitive instead.
type MemoryBank struct {
	mu       sync.Mutex
	balances map[string]math.Int
}

func NewMemoryBank() *MemoryBank {
	return &MemoryBank{balances: make(map[string]math.Int)}
}

// Mint credits an account out of thin air. Test and bootstrap helper.
func (b *MemoryBank) Mint(account string, amount math.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[account] = b.balanceLocked(account).Add(amount)
}

func (b *MemoryBank) Move(from, to string, amount math.Int) error {
	if amount.IsNegative() {
		return errorsmod.Wrap(types.ErrInvalidOffer, "negative transfer amount")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	bal := b.balanceLocked(from)
	if bal.LT(amount) {
		return errorsmod.Wrapf(types.ErrInsufficientFunds, "account %s has %s, needs %s", from, bal, amount)
	}
	b.balances[from] = bal.Sub(amount)
	b.balances[to] = b.balanceLocked(to).Add(amount)
	return nil
}

func (b *MemoryBank) Balance(account string) math.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balanceLocked(account)
}

func (b *MemoryBank) balanceLocked(account string) math.Int {
	if bal, ok := b.balances[account]; ok {
		return bal
	}
	return math.ZeroInt()
}

// memoryTokenResolver maps token accounts to owners; deleting an entry
// simulates a closed account.
type memoryTokenResolver struct {
	mu     sync.Mutex
	owners map[string]string
}

func NewMemoryTokenResolver() *memoryTokenResolver {
	return &memoryTokenResolver{owners: make(map[string]string)}
}

func (r *memoryTokenResolver) SetOwner(tokenAccount, owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners[tokenAccount] = owner
}

func (r *memoryTokenResolver) CloseAccount(tokenAccount string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.owners, tokenAccount)
}

func (r *memoryTokenResolver) Owner(tokenAccount string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner, ok := r.owners[tokenAccount]
	return owner, ok
}
