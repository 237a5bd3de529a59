package logger

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Sink receives aggregated log entries on flush.
type Sink interface {
	Flush(entries []*AggregatedLogEntry)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(entries []*AggregatedLogEntry)

func (f SinkFunc) Flush(entries []*AggregatedLogEntry) { f(entries) }

type CollectionConfig struct {
	TimeInterval   time.Duration // flush interval (e.g., 30s)
	CountThreshold int           // max unique logs before flush (e.g., 100)
	Sink           Sink          // receives aggregated entries
}

type AggregatedLogEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields"`
	Caller    string                 `json:"caller"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// LogCollector deduplicates repeated log entries (same level, message and
// caller) and flushes counted summaries on an interval or when the number
// of unique entries crosses the threshold. It keeps a noisy optimizer from
// flooding the log during a burst of failing fits.
type LogCollector struct {
	config *CollectionConfig
	logMap map[string]*AggregatedLogEntry
	mutex  sync.Mutex
	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewLogCollector(config *CollectionConfig) *LogCollector {
	if config.TimeInterval <= 0 {
		config.TimeInterval = 30 * time.Second
	}
	if config.CountThreshold <= 0 {
		config.CountThreshold = 100
	}

	collector := &LogCollector{
		config: config,
		logMap: make(map[string]*AggregatedLogEntry),
		stopCh: make(chan struct{}),
	}

	collector.wg.Add(1)
	go collector.periodicFlush()

	return collector
}

func (d *LogCollector) AddLog(level, message string, fields map[string]interface{}, caller string) {
	now := time.Now()
	key := hashEntry(level, message, caller)

	d.mutex.Lock()
	entry, ok := d.logMap[key]
	if ok {
		entry.Count++
		entry.LastSeen = now
		entry.Fields = fields
	} else {
		d.logMap[key] = &AggregatedLogEntry{
			Level:     level,
			Message:   message,
			Fields:    fields,
			Caller:    caller,
			Count:     1,
			FirstSeen: now,
			LastSeen:  now,
		}
	}
	flushNow := len(d.logMap) >= d.config.CountThreshold
	d.mutex.Unlock()

	if flushNow {
		d.flush()
	}
}

func (d *LogCollector) periodicFlush() {
	defer d.wg.Done()

	ticker := time.NewTicker(d.config.TimeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.flush()
		case <-d.stopCh:
			d.flush()
			return
		}
	}
}

func (d *LogCollector) flush() {
	d.mutex.Lock()
	if len(d.logMap) == 0 {
		d.mutex.Unlock()
		return
	}
	entries := make([]*AggregatedLogEntry, 0, len(d.logMap))
	for _, e := range d.logMap {
		entries = append(entries, e)
	}
	d.logMap = make(map[string]*AggregatedLogEntry)
	d.mutex.Unlock()

	if d.config.Sink != nil {
		d.config.Sink.Flush(entries)
	}
}

func (d *LogCollector) Close() {
	close(d.stopCh)
	d.wg.Wait()
}

func hashEntry(level, message, caller string) string {
	b, _ := json.Marshal([]string{level, message, caller})
	return fmt.Sprintf("%x", sha256.Sum256(b))
}
