package buffer

// Buffer is a capacity-checked byte accumulator. Appends exceeding the limit are discarded
// entirely and reported, so the accumulated data never grows past the limit.
type Buffer struct {
	memory  []byte
	begin   int
	maxSize int
}

func New(initialSize, maxSize int) Buffer {
	return Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Append writes data, checking whether the new amount of elements (bytes) doesn't exceed the
// limit, otherwise discarding the data and returning false.
func (b *Buffer) Append(elements ...byte) (ok bool) {
	if len(b.memory)+len(elements) > b.maxSize {
		return false
	}

	b.memory = append(b.memory, elements...)
	return true
}

// AppendString is the same as Append, but for strings.
func (b *Buffer) AppendString(str string) (ok bool) {
	if len(b.memory)+len(str) > b.maxSize {
		return false
	}

	b.memory = append(b.memory, str...)
	return true
}

// AppendByte writes a single byte, checking whether it won't exceed the limit.
func (b *Buffer) AppendByte(c byte) (ok bool) {
	if len(b.memory)+1 > b.maxSize {
		return false
	}

	b.memory = append(b.memory, c)
	return true
}

// SegmentLength returns a number of bytes, taken by current segment, calculated as a difference
// between the beginning of the current segment and the current pointer.
func (b *Buffer) SegmentLength() int {
	return len(b.memory) - b.begin
}

// Limit returns the maximal number of bytes the buffer is allowed to hold.
func (b *Buffer) Limit() int {
	return b.maxSize
}

// Finish completes current segment, returning its value.
func (b *Buffer) Finish() []byte {
	segment := b.memory[b.begin:]
	b.begin = len(b.memory)

	return segment
}

// Clear just resets the pointers, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.begin = 0
	b.memory = b.memory[:0]
}
