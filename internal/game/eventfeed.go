package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	feedPanelWidth = 260
	feedMaxEntries = 60
	feedLineHeight = 14
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Label   string // e.g. "L1"
	Message string
}

// EventFeed is a ring buffer of notable lemming events rendered on-screen.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest when full.
func (ef *EventFeed) Add(tick int, label string, msg string) {
	ef.entries[ef.head] = FeedEntry{
		Tick:    tick,
		Label:   label,
		Message: msg,
	}
	ef.head = (ef.head + 1) % feedMaxEntries
	if ef.count < feedMaxEntries {
		ef.count++
	}
}

// Len returns the number of stored entries.
func (ef *EventFeed) Len() int { return ef.count }

// Recent returns entries in chronological order (oldest first).
func (ef *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, ef.count)
	for i := 0; i < ef.count; i++ {
		idx := (ef.head - ef.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = ef.entries[idx]
	}
	return result
}

// Draw renders the feed panel at panelX.
func (ef *EventFeed) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 12, G: 10, B: 16, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 70, G: 60, B: 90, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), 18, color.RGBA{R: 28, G: 22, B: 40, A: 255}, false)
	text.Draw(screen, "EVENTS", basicfont.Face7x13, panelX+8, 13, color.White)

	entries := ef.Recent()
	maxVisible := (panelH - 26) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	recent := 3

	y := 34
	for i, e := range entries {
		col := color.RGBA{R: 150, G: 150, B: 160, A: 255}
		if i >= len(entries)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y-11), float32(feedPanelWidth-4), float32(feedLineHeight), color.RGBA{R: 40, G: 32, B: 56, A: 160}, false)
			col = color.RGBA{R: 235, G: 235, B: 245, A: 255}
		}
		line := fmt.Sprintf("%4d [%s] %s", e.Tick, e.Label, e.Message)
		text.Draw(screen, line, basicfont.Face7x13, panelX+6, y, col)
		y += feedLineHeight
	}
}
