package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	bytesPerFloat = 4
	vertexStride  = floatsPerVertex * bytesPerFloat

	// initialVertexCapacity fits a handful of spreads worth of quads; the
	// buffer doubles when a frame needs more.
	initialVertexCapacity = 1024
)

// vertexBuffer is a single VAO/VBO pair holding the triangles of one frame.
// Every Upload replaces its contents.
type vertexBuffer struct {
	vao, vbo    uint32
	capacity    int // in vertices
	vertexCount int
	grows       int
}

func newVertexBuffer() *vertexBuffer {
	b := &vertexBuffer{}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	b.allocate(initialVertexCapacity)
	return b
}

// allocate (re)creates the buffer storage with room for the given number of
// vertices, and points the vertex attributes at it.
func (b *vertexBuffer) allocate(capacity int) {
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, capacity*vertexStride, nil, gl.DYNAMIC_DRAW)

	// Position attribute (location = 0).
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, vertexStride, gl.PtrOffset(0))
	// Color attribute (location = 1).
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, vertexStride, gl.PtrOffset(2*bytesPerFloat))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	b.capacity = capacity
}

// Upload replaces the buffer contents, growing the storage if needed.
func (b *vertexBuffer) Upload(vertices []float32) {
	count := len(vertices) / floatsPerVertex
	if count > b.capacity {
		capacity := b.capacity
		for capacity < count {
			capacity *= 2
		}
		renderLogger.Printf("growing vertex buffer from %d to %d vertices", b.capacity, capacity)
		b.allocate(capacity)
		b.grows++
	}

	b.vertexCount = count
	if count == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*bytesPerFloat, gl.Ptr(vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Draw issues a single draw call for the uploaded triangles.
func (b *vertexBuffer) Draw() {
	if b.vertexCount == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(b.vertexCount))
	gl.BindVertexArray(0)
}

// Bytes returns the size of the buffer storage.
func (b *vertexBuffer) Bytes() int { return b.capacity * vertexStride }

func (b *vertexBuffer) cleanup() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
}
