package tensor

// Affine is a row-major 4x4 spatial orientation matrix, as carried by
// volumetric medical formats. Natural 2-D images have none.
type Affine [4][4]float64

// Identity returns the identity affine.
func Identity() *Affine {
	var a Affine
	for i := 0; i < 4; i++ {
		a[i][i] = 1
	}
	return &a
}

// Meta is the companion metadata mapping for an image key.
//
// SpatialShape is the array shape with the trailing channel axis removed.
// OriginalChannelDim records which axis carried channels in the source
// layout; arrays adapted from memory always use the last axis (-1).
// OriginalAffine is nil when no orientation matrix is derivable, which is
// always the case for arrays adapted from memory.
type Meta struct {
	SpatialShape       Shape
	OriginalChannelDim int
	OriginalAffine     *Affine

	// Extra holds reader-specific fields such as source format and path.
	Extra map[string]string
}

// NewMeta returns an empty metadata mapping.
func NewMeta() *Meta {
	return &Meta{Extra: make(map[string]string)}
}

// FillDirect populates m for an array adapted directly from memory:
// spatial shape is the array shape minus the last axis, the channel axis is
// the last one, and no affine is derivable.
func (m *Meta) FillDirect(shape Shape) {
	m.SpatialShape = shape.Spatial()
	m.OriginalChannelDim = -1
	m.OriginalAffine = nil
}

// CopyFrom overwrites m's fields with src's, merging Extra.
func (m *Meta) CopyFrom(src *Meta) {
	m.SpatialShape = src.SpatialShape.Clone()
	m.OriginalChannelDim = src.OriginalChannelDim
	m.OriginalAffine = src.OriginalAffine
	if m.Extra == nil {
		m.Extra = make(map[string]string, len(src.Extra))
	}
	for k, v := range src.Extra {
		m.Extra[k] = v
	}
}

// DirectMeta builds the metadata mapping for a direct in-memory array.
func DirectMeta(shape Shape) *Meta {
	m := NewMeta()
	m.FillDirect(shape)
	return m
}

// MetaTensor binds an array to its metadata mapping. It is the uniform
// representation downstream inference stages consume.
type MetaTensor struct {
	*Dense
	Meta *Meta
}

// NewMetaTensor wraps an array with its metadata.
func NewMetaTensor(d *Dense, meta *Meta) *MetaTensor {
	return &MetaTensor{Dense: d, Meta: meta}
}
