package ports

// Store is the request-scoped view of the database. One Store is created per
// inbound request; all repositories obtained from it share the request's
// single connection and transaction. Repositories must not outlive the
// request.
type Store interface {
	Accounts() AccountRepository
	Dishes() DishRepository
	Orders() OrderRepository
}
