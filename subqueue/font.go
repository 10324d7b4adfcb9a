package subqueue

import (
	"fmt"
	"image"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/kestrelgpu/vkrt/command"
	"github.com/kestrelgpu/vkrt/memory"
	"github.com/kestrelgpu/vkrt/object"
	"github.com/kestrelgpu/vkrt/rtlog"
	"github.com/kestrelgpu/vkrt/status"
	"github.com/kestrelgpu/vkrt/vk"
)

// CharId identifies one persistent glyph placement: a font, a codepoint
// within it, and a rendering anchor (e.g. a hinting/subpixel variant),
// matching spec.md §4.9's "CharId (font id | codepoint | anchor)".
type CharId struct {
	FontID    uint32
	Codepoint rune
	Anchor    uint8
}

// glyphRingPageSize is the size of one persistent glyph atlas page,
// per spec.md §4.9 ("a ring of 16 MiB device-local buffers").
const glyphRingPageSize = 16 << 20

const maxGlyphRingPages = 2

// glyphPageWidth is the fixed texel width every ring page packs glyphs
// into; page height follows from glyphRingPageSize at 4 bytes/texel.
const glyphPageWidth = 2048
const glyphPageHeight = glyphRingPageSize / (glyphPageWidth * 4)

// GlyphSlot locates one installed glyph's bytes within the ring.
type GlyphSlot struct {
	page   int
	offset vk.DeviceSize
	rect   image.Rectangle
}

// glyphRingPage is one persistent device-local buffer the ring packs
// glyphs into via a height-sorted shelf allocator: glyphs land left to
// right on the current shelf, and a new shelf opens below it once a row
// no longer has horizontal room.
type glyphRingPage struct {
	buffer  *object.Buffer
	shelfY  int
	shelfH  int
	cursorX int
}

// glyphRing manages the persistent-per-glyph cache: a small, bounded set
// of device-local buffers keyed by CharId. It grows from 1 to
// maxGlyphRingPages pages on exhaustion; beyond that, installs are
// rejected with ErrorOutOfPoolMemory logged at warn rather than growing
// unbounded.
type glyphRing struct {
	cmds   *vk.Commands
	device vk.Device
	alloc  *memory.Allocator
	pool   *memory.DeviceMemoryPool

	pages map[int]*glyphRingPage
	slots map[CharId]GlyphSlot
}

func newGlyphRing(cmds *vk.Commands, device vk.Device, alloc *memory.Allocator, pool *memory.DeviceMemoryPool) *glyphRing {
	return &glyphRing{
		cmds: cmds, device: device, alloc: alloc, pool: pool,
		pages: map[int]*glyphRingPage{}, slots: map[CharId]GlyphSlot{},
	}
}

func (r *glyphRing) addPage() (*glyphRingPage, error) {
	info := &vk.BufferCreateInfo{
		SType: vk.StructureTypeBufferCreateInfo, Size: glyphRingPageSize,
		Usage: vk.BufferUsageTransferDstBit, SharingMode: vk.SharingModeExclusive,
	}
	buf, err := object.NewBuffer(r.cmds, r.device, info)
	if err != nil {
		return nil, err
	}
	req := buf.MemoryRequirements(r.cmds, r.device)
	memType, ok := r.alloc.FindMemoryType(req.MemoryTypeBits, memory.DeviceLocal)
	if !ok {
		buf.Destroy(r.cmds, r.device)
		return nil, fmt.Errorf("subqueue: no DeviceLocal memory type for glyph ring page")
	}
	block, err := r.pool.Alloc(memType, req.Size, req.Alignment, memory.Linear, false)
	if err != nil {
		buf.Destroy(r.cmds, r.device)
		return nil, err
	}
	if err := buf.BindMemory(r.cmds, r.device, block); err != nil {
		r.pool.Free(block)
		buf.Destroy(r.cmds, r.device)
		return nil, err
	}
	page := &glyphRingPage{buffer: buf}
	r.pages[len(r.pages)] = page
	return page, nil
}

// reserve finds or creates room for a glyph of the given rectangle,
// growing the ring by one page (up to maxGlyphRingPages) when no existing
// page's current shelf has room. Returns false when the ring is already
// at its page cap and full.
func (r *glyphRing) reserve(id CharId, rect image.Rectangle) (GlyphSlot, bool) {
	if slot, ok := r.slots[id]; ok {
		return slot, true
	}

	w, h := rect.Dx(), rect.Dy()

	for pageIdx := 0; pageIdx < len(r.pages); pageIdx++ {
		page := r.pages[pageIdx]
		if slot, ok := page.tryReserve(pageIdx, w, h); ok {
			slot.rect = rect
			r.slots[id] = slot
			return slot, true
		}
	}

	if len(r.pages) >= maxGlyphRingPages {
		rtlog.Logger().Warn("subqueue: glyph ring exhausted", "status", status.ErrorOutOfPoolMemory.String(), "char", id)
		return GlyphSlot{}, false
	}

	page, err := r.addPage()
	if err != nil {
		rtlog.Logger().Warn("subqueue: glyph ring page allocation failed", "error", err)
		return GlyphSlot{}, false
	}
	slot, ok := page.tryReserve(len(r.pages)-1, w, h)
	if ok {
		slot.rect = rect
		r.slots[id] = slot
	}
	return slot, ok
}

// tryReserve places a w x h glyph on the page's current shelf in texel
// space, opening a new shelf below the tallest glyph seen on the current
// row once it runs out of horizontal room. Callers sort glyphs
// tallest-first so a shelf's height is set once, by its first occupant.
func (p *glyphRingPage) tryReserve(pageIdx, w, h int) (GlyphSlot, bool) {
	if p.cursorX+w > glyphPageWidth {
		p.shelfY += p.shelfH
		p.cursorX = 0
		p.shelfH = 0
	}
	if p.shelfY+h > glyphPageHeight {
		return GlyphSlot{}, false
	}

	offset := vk.DeviceSize(p.shelfY*glyphPageWidth+p.cursorX) * 4

	p.cursorX += w
	if h > p.shelfH {
		p.shelfH = h
	}
	return GlyphSlot{page: pageIdx, offset: offset}, true
}

// GlyphRequest is one caller-submitted glyph to rasterize and install.
type GlyphRequest struct {
	ID    CharId
	Face  font.Face
	Rune  rune
	Dot   fixed.Point26_6
}

// RasterizedGlyph is one glyph's CPU-side rasterized mask plus its
// requested identity, produced by Rasterize ahead of packing.
type RasterizedGlyph struct {
	ID      CharId
	Mask    *image.Alpha
	Bounds  image.Rectangle
	Advance fixed.Int26_6
}

// Rasterize renders every requested glyph via its font.Face into an
// *image.Alpha coverage mask (spec.md §4.9 "a batch of glyph rasterization
// requests"); Install expands the mask to RGBA8. Requests the face has no
// glyph for are dropped.
func Rasterize(requests []GlyphRequest) []RasterizedGlyph {
	out := make([]RasterizedGlyph, 0, len(requests))
	for _, req := range requests {
		dr, mask, _, advance, ok := req.Face.Glyph(req.Dot, req.Rune)
		if !ok {
			continue
		}
		alpha := image.NewAlpha(dr.Bounds())
		draw(alpha, mask, dr)
		out = append(out, RasterizedGlyph{ID: req.ID, Mask: alpha, Bounds: dr, Advance: advance})
	}
	return out
}

// draw copies src's alpha coverage (however it encodes it) into dst at
// dst's own origin, since mask images returned by font.Face.Glyph are not
// always *image.Alpha themselves.
func draw(dst *image.Alpha, src image.Image, bounds image.Rectangle) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, a := src.At(x, y).RGBA()
			dst.SetAlpha(x, y, image.Alpha{A: uint8(a >> 8)})
		}
	}
}

// rgba8 expands alpha's single channel into tightly packed RGBA8 bytes,
// the format the persistent ring and staging buffers store (spec.md §4.7
// sentinel format: R8G8B8A8Unorm throughout this runtime's bindless
// images).
func rgba8(mask *image.Alpha) []byte {
	b := mask.Bounds()
	out := make([]byte, b.Dx()*b.Dy()*4)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := mask.AlphaAt(x, y).A
			out[i+0], out[i+1], out[i+2], out[i+3] = 255, 255, 255, a
			i += 4
		}
	}
	return out
}

// FontQueue compiles rasterized glyph batches into the persistent glyph
// ring, staging new glyphs through a per-frame staging buffer and
// installing them via buffer-to-buffer copies (spec.md §4.9 "FontQueue").
type FontQueue struct {
	tq   *TransferQueue
	ring *glyphRing

	preloadGroups bool
}

// NewFontQueue builds a FontQueue backed by tq for staging and memory
// allocation. preloadGroups mirrors config.Config.FontPreloadGroups:
// when true, a requested codepoint is expanded to its containing Unicode
// block before rasterization (spec.md §6's configuration table).
func NewFontQueue(tq *TransferQueue, preloadGroups bool) *FontQueue {
	return &FontQueue{
		tq:            tq,
		ring:          newGlyphRing(tq.cmds, tq.device, tq.allocator, tq.stagingPool),
		preloadGroups: preloadGroups,
	}
}

// unicodeBlock describes one contiguous codepoint range FontPreloadGroups
// expands a request into, covering the two ranges spec.md §6 names: Basic
// Latin and Latin-1 Supplement.
type unicodeBlock struct{ lo, hi rune }

var preloadBlocks = []unicodeBlock{
	{lo: 0x0020, hi: 0x007E}, // Basic Latin (printable)
	{lo: 0x00A0, hi: 0x00FF}, // Latin-1 Supplement
}

// ExpandForPreload returns every codepoint in r's containing preload
// block, or [r] alone if preloadGroups is false or r falls outside every
// known block.
func (fq *FontQueue) ExpandForPreload(r rune) []rune {
	if !fq.preloadGroups {
		return []rune{r}
	}
	for _, b := range preloadBlocks {
		if r >= b.lo && r <= b.hi {
			out := make([]rune, 0, b.hi-b.lo+1)
			for c := b.lo; c <= b.hi; c++ {
				out = append(out, c)
			}
			return out
		}
	}
	return []rune{r}
}

// Install sorts glyphs tallest-first in place (a stable sort, so equal
// heights keep the caller's order), per spec.md §4.9's "height-sorted
// shelf-packing pass before any copy command is recorded", packs them
// into the persistent ring, and records their
// staging-buffer-to-persistent-buffer install copies into cb. Glyphs that
// the ring rejects (exhausted beyond its page cap) are skipped and
// reported in the returned slice.
func (fq *FontQueue) Install(cb *command.Buffer, glyphs []RasterizedGlyph) (installed map[CharId]GlyphSlot, rejected []CharId) {
	sort.SliceStable(glyphs, func(i, j int) bool {
		return glyphs[i].Bounds.Dy() > glyphs[j].Bounds.Dy()
	})

	installed = map[CharId]GlyphSlot{}
	for _, g := range glyphs {
		slot, ok := fq.ring.reserve(g.ID, g.Bounds)
		if !ok {
			rejected = append(rejected, g.ID)
			continue
		}

		bytes := rgba8(g.Mask)
		staging, block, err := fq.tq.makeStaging(bytes)
		if err != nil {
			rtlog.Logger().Warn("subqueue: font glyph staging failed", "error", err, "char", g.ID)
			rejected = append(rejected, g.ID)
			continue
		}

		// The glyph's staging bytes are packed tightly (stride = w*4), but
		// the destination page uses a fixed glyphPageWidth*4 stride, so each
		// scanline needs its own region.
		page := fq.ring.pages[slot.page]
		w := vk.DeviceSize(g.Bounds.Dx()) * 4
		stride := vk.DeviceSize(glyphPageWidth) * 4
		regions := make([]vk.BufferCopy, g.Bounds.Dy())
		for row := 0; row < g.Bounds.Dy(); row++ {
			regions[row] = vk.BufferCopy{
				SrcOffset: vk.DeviceSize(row) * w,
				DstOffset: slot.offset + vk.DeviceSize(row)*stride,
				Size:      w,
			}
		}
		cb.CopyBuffer(staging.Handle(), page.buffer.Handle(), regions)
		staging.Destroy(fq.tq.cmds, fq.tq.device)
		fq.tq.stagingPool.Free(block)

		installed[g.ID] = slot
	}
	return installed, rejected
}
