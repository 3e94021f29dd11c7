// Package memory implementa los puertos de repositorio en memoria (DB_DRIVER=memory).
// No persiste entre reinicios; sirve para desarrollo local y para probar los casos de uso.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/insumos-api/internal/application/inventory"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// Store guarda todas las tablas en mapas protegidos por un RWMutex.
// Cada transacción trabaja sobre una copia que solo se publica si fn termina sin error;
// txMu serializa las transacciones y las escrituras hechas fuera de ellas.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	d    tables
	base *view
}

// view es el estado que ven los repositorios: el confirmado del store o la copia
// de trabajo de una transacción abierta.
type view struct {
	s  *Store
	tx bool
	mu sync.RWMutex
	d  *tables
}

func (v *view) lock() func() {
	if v.tx {
		v.mu.Lock()
		return v.mu.Unlock
	}
	// Fuera de transacción se espera a que termine la que esté abierta
	v.s.txMu.Lock()
	v.s.mu.Lock()
	return func() {
		v.s.mu.Unlock()
		v.s.txMu.Unlock()
	}
}

func (v *view) rlock() func() {
	if v.tx {
		v.mu.RLock()
		return v.mu.RUnlock
	}
	v.s.mu.RLock()
	return v.s.mu.RUnlock
}

func (v *view) repos() inventory.TxRepos {
	return inventory.TxRepos{
		Movimientos: &MovimientoRepo{v: v},
		Stock:       &StockRepo{v: v},
		Materiales:  &MaterialRepo{v: v},
		Pedidos:     &PedidoRepo{v: v},
		Consumos:    &ConsumoRepo{v: v},
		Reservas:    &ReservaRepo{v: v},
		Prestamos:   &PrestamoRepo{v: v},
	}
}

type tables struct {
	zonas        map[string]entity.Zona
	materiales   map[string]entity.Material
	movimientos  []entity.Movimiento
	pedidos      map[string]entity.Pedido // sin Items
	items        map[string][]entity.PedidoItem
	secuencias   map[string]int64
	consumos     []entity.Consumo
	reservas     map[string]entity.Reserva
	prestamos    map[string]entity.Prestamo // sin Devoluciones
	devoluciones map[string][]entity.Devolucion
}

// NewStore crea un store vacío.
func NewStore() *Store {
	s := &Store{d: tables{
		zonas:        make(map[string]entity.Zona),
		materiales:   make(map[string]entity.Material),
		pedidos:      make(map[string]entity.Pedido),
		items:        make(map[string][]entity.PedidoItem),
		secuencias:   make(map[string]int64),
		reservas:     make(map[string]entity.Reserva),
		prestamos:    make(map[string]entity.Prestamo),
		devoluciones: make(map[string][]entity.Devolucion),
	}}
	s.base = &view{s: s, d: &s.d}
	return s
}

func (t tables) clone() tables {
	c := tables{
		zonas:        make(map[string]entity.Zona, len(t.zonas)),
		materiales:   make(map[string]entity.Material, len(t.materiales)),
		movimientos:  append([]entity.Movimiento(nil), t.movimientos...),
		pedidos:      make(map[string]entity.Pedido, len(t.pedidos)),
		items:        make(map[string][]entity.PedidoItem, len(t.items)),
		secuencias:   make(map[string]int64, len(t.secuencias)),
		consumos:     append([]entity.Consumo(nil), t.consumos...),
		reservas:     make(map[string]entity.Reserva, len(t.reservas)),
		prestamos:    make(map[string]entity.Prestamo, len(t.prestamos)),
		devoluciones: make(map[string][]entity.Devolucion, len(t.devoluciones)),
	}
	for k, v := range t.zonas {
		c.zonas[k] = v
	}
	for k, v := range t.materiales {
		c.materiales[k] = v
	}
	for k, v := range t.pedidos {
		c.pedidos[k] = v
	}
	for k, v := range t.items {
		c.items[k] = append([]entity.PedidoItem(nil), v...)
	}
	for k, v := range t.secuencias {
		c.secuencias[k] = v
	}
	for k, v := range t.reservas {
		c.reservas[k] = v
	}
	for k, v := range t.prestamos {
		c.prestamos[k] = v
	}
	for k, v := range t.devoluciones {
		c.devoluciones[k] = append([]entity.Devolucion(nil), v...)
	}
	return c
}

var _ inventory.TxRunner = (*Store)(nil)

// Run ejecuta fn de forma exclusiva respecto a otras transacciones. Los cambios de fn
// se publican al terminar sin error; hasta entonces las lecturas fuera de fn no los ven.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, r inventory.TxRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.d.clone()
	s.mu.RUnlock()

	tx := &view{s: s, tx: true, d: &work}
	if err := fn(ctx, tx.repos()); err != nil {
		return err
	}

	s.mu.Lock()
	s.d = work
	s.mu.Unlock()
	return nil
}

func (s *Store) Zonas() *ZonaRepo { return &ZonaRepo{v: s.base} }
func (s *Store) Materiales() *MaterialRepo { return &MaterialRepo{v: s.base} }
func (s *Store) Movimientos() *MovimientoRepo { return &MovimientoRepo{v: s.base} }
func (s *Store) Stock() *StockRepo { return &StockRepo{v: s.base} }
func (s *Store) Pedidos() *PedidoRepo { return &PedidoRepo{v: s.base} }
func (s *Store) Consumos() *ConsumoRepo { return &ConsumoRepo{v: s.base} }
func (s *Store) Reservas() *ReservaRepo { return &ReservaRepo{v: s.base} }
func (s *Store) Prestamos() *PrestamoRepo { return &PrestamoRepo{v: s.base} }
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{v: s.base} }

func page[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
