package ground

// Stats accumulates per-execution counters, grounded on the source's
// stats vector and named after the teacher's SLGStats style — plain
// fields rather than a map, since the counter set is fixed and small.
type Stats struct {
	Calls          int64
	Results        int64
	Completes      int64
	CacheHits      int64
	CacheMisses    int64
	DefinesCreated int64
	CyclesDetected int64
}

func (s *Stats) recordCall()     { if s != nil { s.Calls++ } }
func (s *Stats) recordResult()   { if s != nil { s.Results++ } }
func (s *Stats) recordComplete() { if s != nil { s.Completes++ } }
func (s *Stats) recordCacheHit() { if s != nil { s.CacheHits++ } }
func (s *Stats) recordCacheMiss() { if s != nil { s.CacheMisses++ } }
func (s *Stats) recordDefine()   { if s != nil { s.DefinesCreated++ } }
func (s *Stats) recordCycle()    { if s != nil { s.CyclesDetected++ } }
