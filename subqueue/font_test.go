package subqueue

import (
	"image"
	"testing"

	"github.com/kestrelgpu/vkrt/vk"
)

// TestGlyphRingPageShelfPacksLeftToRight matches spec.md §4.9's
// height-sorted shelf-packing pass: glyphs fill a shelf left to right and
// a new shelf opens once a row runs out of horizontal room.
func TestGlyphRingPageShelfPacksLeftToRight(t *testing.T) {
	page := &glyphRingPage{}

	a, ok := page.tryReserve(0, 10, 20)
	if !ok {
		t.Fatal("want first glyph to fit")
	}
	if a.offset != 0 {
		t.Fatalf("first glyph offset = %d, want 0", a.offset)
	}

	b, ok := page.tryReserve(0, 10, 15)
	if !ok {
		t.Fatal("want second glyph to fit beside the first")
	}
	wantB := vk.DeviceSize(10) * 4
	if b.offset != wantB {
		t.Fatalf("second glyph offset = %d, want %d (same shelf, shifted right)", b.offset, wantB)
	}

	// Force a new shelf by filling the rest of the row.
	page.cursorX = glyphPageWidth - 5
	c, ok := page.tryReserve(0, 10, 5)
	if !ok {
		t.Fatal("want third glyph to open a new shelf")
	}
	wantC := vk.DeviceSize(20*glyphPageWidth) * 4 // below the tallest glyph on shelf 0 (height 20)
	if c.offset != wantC {
		t.Fatalf("third glyph offset = %d, want %d (new shelf below height-20 row)", c.offset, wantC)
	}
}

// TestGlyphRingPageRejectsWhenPageIsFull matches the ring's refusal path:
// a glyph taller than the remaining vertical room does not fit.
func TestGlyphRingPageRejectsWhenPageIsFull(t *testing.T) {
	page := &glyphRingPage{shelfY: glyphPageHeight - 1}
	if _, ok := page.tryReserve(0, 4, 4); ok {
		t.Fatal("want a glyph that overflows the page's height to be rejected")
	}
}

// TestGlyphRingReservesSameCharIdOnce matches the cache semantics: a
// CharId already installed returns its existing slot rather than
// reserving fresh room.
func TestGlyphRingReservesSameCharIdOnce(t *testing.T) {
	r := &glyphRing{pages: map[int]*glyphRingPage{0: {}}, slots: map[CharId]GlyphSlot{}}
	id := CharId{FontID: 1, Codepoint: 'A'}

	first, ok := r.reserve(id, image.Rect(0, 0, 8, 8))
	if !ok {
		t.Fatal("want first reservation to succeed")
	}
	second, ok := r.reserve(id, image.Rect(0, 0, 8, 8))
	if !ok {
		t.Fatal("want repeat reservation to succeed")
	}
	if first.offset != second.offset || first.page != second.page {
		t.Fatalf("want the same slot returned for a cached CharId, got %+v and %+v", first, second)
	}
}

// TestGlyphRingGrowsThenRefusesBeyondPageCap matches the Open Question
// decision: the ring grows from 1 to maxGlyphRingPages pages on
// exhaustion, then refuses further installs rather than growing without
// bound.
func TestGlyphRingGrowsThenRefusesBeyondPageCap(t *testing.T) {
	r := &glyphRing{pages: map[int]*glyphRingPage{}, slots: map[CharId]GlyphSlot{}}

	// Pre-fill two "pages" worth of book-keeping state without any real
	// Vulkan buffer, by directly marking each full: addPage would create a
	// real object.Buffer, which this package's tests never construct.
	r.pages[0] = &glyphRingPage{shelfY: glyphPageHeight}
	r.pages[1] = &glyphRingPage{shelfY: glyphPageHeight}

	_, ok := r.reserve(CharId{FontID: 1, Codepoint: 'Z'}, image.Rect(0, 0, 4, 4))
	if ok {
		t.Fatal("want reservation to be refused once every existing page is full and the page cap is already reached")
	}
}

// TestExpandForPreloadReturnsSingleRuneWhenDisabled matches
// config.Config.FontPreloadGroups == false: no Unicode block expansion.
func TestExpandForPreloadReturnsSingleRuneWhenDisabled(t *testing.T) {
	fq := &FontQueue{preloadGroups: false}
	got := fq.ExpandForPreload('A')
	if len(got) != 1 || got[0] != 'A' {
		t.Fatalf("got %v, want just ['A']", got)
	}
}

// TestExpandForPreloadExpandsKnownBlock matches spec.md §6's
// FontPreloadGroups behavior: a codepoint inside a known Unicode block
// expands to the whole block.
func TestExpandForPreloadExpandsKnownBlock(t *testing.T) {
	fq := &FontQueue{preloadGroups: true}
	got := fq.ExpandForPreload('A') // Basic Latin
	if len(got) != int(preloadBlocks[0].hi-preloadBlocks[0].lo+1) {
		t.Fatalf("got %d codepoints, want the whole Basic Latin block", len(got))
	}

	found := false
	for _, r := range got {
		if r == 'A' {
			found = true
		}
	}
	if !found {
		t.Fatal("want the requested rune present in its own expanded block")
	}
}

// TestExpandForPreloadPassesThroughUnknownBlock matches codepoints
// outside every known preload block: they pass through unexpanded.
func TestExpandForPreloadPassesThroughUnknownBlock(t *testing.T) {
	fq := &FontQueue{preloadGroups: true}
	got := fq.ExpandForPreload('語') // well outside Basic Latin/Latin-1
	if len(got) != 1 || got[0] != '語' {
		t.Fatalf("got %v, want just the rune itself", got)
	}
}
