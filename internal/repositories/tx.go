package repositories

import "context"

// TxRepos bundles the repositories that participate in the checkout
// transaction, bound to the same transaction handle.
type TxRepos interface {
	Carts() CartRepository
	Orders() OrderRepository
	Products() ProductRepository
}

// TxManager runs fn within a single storage transaction. If fn returns
// an error the transaction is rolled back and none of its effects are
// visible; otherwise it commits.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
