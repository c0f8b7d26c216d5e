package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDocumentStableID(t *testing.T) {
	a := &Geek{Name: "张三", Content: "Java developer", Status: StatusGreeted}
	b := &Geek{Name: "张三", Content: "Java developer", Status: StatusDisabled}
	c := &Geek{Name: "李四", Content: "Java developer"}

	da, db, dc := a.ToDocument(), b.ToDocument(), c.ToDocument()
	assert.Equal(t, da.ID, db.ID, "status must not affect the document id")
	assert.NotEqual(t, da.ID, dc.ID)
	assert.Equal(t, StatusGreeted, da.Status)
	assert.False(t, da.ProcessedAt.IsZero())
}

func TestCloneDoesNotShare(t *testing.T) {
	src := []Geek{{Name: "a", Status: StatusPending}}
	dst := Clone(src)
	dst[0].Status = StatusGreeted
	require.Len(t, dst, 1)
	assert.Equal(t, StatusPending, src[0].Status)
	assert.Nil(t, Clone(nil))
}

func TestNewMessagesStatus(t *testing.T) {
	assert.Equal(t, "3 new messages", NewMessagesStatus(3))
}
