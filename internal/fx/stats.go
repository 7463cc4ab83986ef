package fx

type ArenaStats struct {
	Kind     Kind
	Live     int
	Capacity int
	Emitted  uint64
	Dropped  uint64 // emits refused because the arena was full
}

type PoolStats struct {
	Kind      PoolKind
	Active    int
	Capacity  int
	Acquired  uint64
	Saturated uint64 // acquires that found no free object
}

type LightStats struct {
	Active   int
	Capacity int
	Spawned  uint64
	Recycled uint64 // spawns that cut an older light short
}

// Stats is a point-in-time copy of a System's counters.
type Stats struct {
	Quality Quality
	Arenas  [NumKinds]ArenaStats
	Pools   [NumPoolKinds]PoolStats
	Lights  LightStats
}

// Live is the total number of drawn particles and objects.
func (s Stats) Live() int {
	n := 0
	for _, a := range s.Arenas {
		n += a.Live
	}
	for _, p := range s.Pools {
		n += p.Active
	}
	return n
}
