package postgres

import (
	"github.com/redtable/pos-system/internal/core/ports"
)

// Store bundles the repositories of one request over its single Conn. It is
// the concrete ports.Store handed to handlers by the transaction middleware.
type Store struct {
	conn     *Conn
	accounts *AccountRepository
	dishes   *DishRepository
	orders   *OrderRepository
}

func newStore(conn *Conn) *Store {
	return &Store{
		conn:     conn,
		accounts: NewAccountRepository(conn),
		dishes:   NewDishRepository(conn),
		orders:   NewOrderRepository(conn),
	}
}

func (s *Store) Accounts() ports.AccountRepository { return s.accounts }
func (s *Store) Dishes() ports.DishRepository      { return s.dishes }
func (s *Store) Orders() ports.OrderRepository     { return s.orders }

// Commit, Rollback and Release delegate to the request connection; the
// transaction middleware calls them at request end.
func (s *Store) Commit() error   { return s.conn.Commit() }
func (s *Store) Rollback() error { return s.conn.Rollback() }
func (s *Store) Release()        { s.conn.Release() }
