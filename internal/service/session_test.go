package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
)

func TestSessionManager(t *testing.T) {
	t.Run("create and get", func(t *testing.T) {
		m := NewSessionManager(0)
		defer m.Stop()

		sess := m.Create()
		assert.NotEmpty(t, sess.ID)

		got, err := m.Get(sess.ID)
		require.NoError(t, err)
		assert.Same(t, sess, got)
	})

	t.Run("unknown id", func(t *testing.T) {
		m := NewSessionManager(0)
		defer m.Stop()

		_, err := m.Get("nope")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		m := NewSessionManager(0)
		defer m.Stop()

		a := m.Create()
		b := m.Create()
		a.Cart.AddItem(model.CatalogItem{ItemCode: "9900001", Price: 1.99, StockUOM: "Kg"}, 1, "")

		assert.Equal(t, 1, a.Cart.Len())
		assert.Equal(t, 0, b.Cart.Len())
	})

	t.Run("delete", func(t *testing.T) {
		m := NewSessionManager(0)
		defer m.Stop()

		sess := m.Create()
		m.Delete(sess.ID)
		_, err := m.Get(sess.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.Equal(t, 0, m.Len())
	})

	t.Run("idle eviction", func(t *testing.T) {
		m := NewSessionManager(10 * time.Millisecond)
		defer m.Stop()

		sess := m.Create()
		time.Sleep(30 * time.Millisecond)
		m.evictIdle()

		_, err := m.Get(sess.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("delete stops the detector", func(t *testing.T) {
		m := NewSessionManager(0)
		defer m.Stop()

		sess := m.Create()
		detector := sess.Detector(time.Minute, func(string) {})
		m.Delete(sess.ID)

		// A stopped detector discards further input instead of arming
		// its timer.
		detector.Input("9900001007606")
		assert.Empty(t, detector.Flush())
	})

	t.Run("concurrent input and delete", func(t *testing.T) {
		// Typed input lazily creates the detector while Delete tears it
		// down; both must go through the session mutex.
		m := NewSessionManager(0)
		defer m.Stop()

		sess := m.Create()
		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 100; i++ {
				sess.Detector(time.Minute, func(string) {}).Input("9900001007606")
			}
		}()

		m.Delete(sess.ID)
		<-done
		sess.stopDetector()
	})
}

func TestSession_Options(t *testing.T) {
	sess := newSession("s1")

	t.Run("zero options are not stored", func(t *testing.T) {
		sess.setOptions("9900001", model.LineOptions{})
		assert.Empty(t, sess.Options())
	})

	t.Run("set and read back", func(t *testing.T) {
		sess.setOptions("9900001", model.LineOptions{DiscountPercent: 10})
		assert.Equal(t, 10.0, sess.LineOptions("9900001").DiscountPercent)
	})

	t.Run("Options returns a copy", func(t *testing.T) {
		opts := sess.Options()
		opts["9900001"] = model.LineOptions{DiscountPercent: 99}
		assert.Equal(t, 10.0, sess.LineOptions("9900001").DiscountPercent)
	})

	t.Run("dropLineState clears everything for the code", func(t *testing.T) {
		sess.addPending("9900001", model.Preselect{BatchNo: "B-1"})
		sess.dropLineState("9900001")
		assert.True(t, sess.LineOptions("9900001").IsZero())
		_, ok := sess.takePending("9900001")
		assert.False(t, ok)
	})
}

func TestSession_Pending(t *testing.T) {
	sess := newSession("s1")

	t.Run("batch and serial merge for the same code", func(t *testing.T) {
		sess.addPending("1000042", model.Preselect{BatchNo: "B-1", BatchQty: 48})
		sess.addPending("1000042", model.Preselect{SerialNo: "SN-1"})

		p, ok := sess.takePending("1000042")
		require.True(t, ok)
		assert.Equal(t, "B-1", p.BatchNo)
		assert.Equal(t, 48.0, p.BatchQty)
		assert.Equal(t, "SN-1", p.SerialNo)
	})

	t.Run("take removes the entry", func(t *testing.T) {
		_, ok := sess.takePending("1000042")
		assert.False(t, ok)
	})

	t.Run("newer batch replaces older batch", func(t *testing.T) {
		sess.addPending("1000042", model.Preselect{BatchNo: "B-1", BatchQty: 48})
		sess.addPending("1000042", model.Preselect{BatchNo: "B-2", BatchQty: 12})

		p, _ := sess.takePending("1000042")
		assert.Equal(t, "B-2", p.BatchNo)
		assert.Equal(t, 12.0, p.BatchQty)
	})
}

func TestSession_UOMGeneration(t *testing.T) {
	sess := newSession("s1")

	gen1 := sess.nextUOMGeneration("1000042")
	assert.True(t, sess.uomGenerationCurrent("1000042", gen1))

	gen2 := sess.nextUOMGeneration("1000042")
	assert.False(t, sess.uomGenerationCurrent("1000042", gen1))
	assert.True(t, sess.uomGenerationCurrent("1000042", gen2))

	// Stamps are per line.
	other := sess.nextUOMGeneration("9900001")
	assert.True(t, sess.uomGenerationCurrent("9900001", other))
	assert.True(t, sess.uomGenerationCurrent("1000042", gen2))
}

func TestSession_ClearState(t *testing.T) {
	sess := newSession("s1")
	sess.setOptions("a", model.LineOptions{DiscountPercent: 5})
	sess.addPending("b", model.Preselect{SerialNo: "SN-9"})
	sess.nextUOMGeneration("a")

	sess.clearState()

	assert.Empty(t, sess.Options())
	_, ok := sess.takePending("b")
	assert.False(t, ok)
}
