package client

import (
	"sync"

	"querytrack/internal/domain/qtype"
	"querytrack/internal/domain/query"
)

// Cache хранит последние полученные списки запросов и типов.
// Успешная мутация сбрасывает затронутую коллекцию; неудачная ее не трогает.
//
// Каждый сброс увеличивает поколение коллекции. Список, загрузка которого
// началась до сброса, в кэш уже не попадает.
type Cache struct {
	mu sync.RWMutex

	queries      []query.Query
	queriesValid bool
	queriesGen   uint64

	types      []qtype.Type
	typesValid bool
	typesGen   uint64
}

func NewCache() *Cache {
	return &Cache{}
}

// Queries возвращает копию списка и текущее поколение. При промахе поколение
// нужно передать в SetQueries после загрузки.
func (c *Cache) Queries() ([]query.Query, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.queriesValid {
		return nil, c.queriesGen, false
	}
	return append([]query.Query(nil), c.queries...), c.queriesGen, true
}

// SetQueries сохраняет список, загруженный в поколении gen. Если с тех пор
// коллекцию сбросили, запись отбрасывается и возвращается false.
func (c *Cache) SetQueries(gen uint64, queries []query.Query) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.queriesGen {
		return false
	}
	c.queries = append([]query.Query(nil), queries...)
	c.queriesValid = true
	return true
}

func (c *Cache) InvalidateQueries() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queries = nil
	c.queriesValid = false
	c.queriesGen++
}

func (c *Cache) Types() ([]qtype.Type, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.typesValid {
		return nil, c.typesGen, false
	}
	return append([]qtype.Type(nil), c.types...), c.typesGen, true
}

func (c *Cache) SetTypes(gen uint64, types []qtype.Type) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.typesGen {
		return false
	}
	c.types = append([]qtype.Type(nil), types...)
	c.typesValid = true
	return true
}

func (c *Cache) InvalidateTypes() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.types = nil
	c.typesValid = false
	c.typesGen++
}

// Clear сбрасывает обе коллекции, например при смене пользователя.
func (c *Cache) Clear() {
	c.InvalidateQueries()
	c.InvalidateTypes()
}
