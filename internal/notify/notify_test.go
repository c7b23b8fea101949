package notify

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/pkg/logger"
)

type countingRecorder struct {
	bySeverity map[string]int
}

func (r *countingRecorder) ObserveNotification(severity string) {
	r.bySeverity[severity]++
}

func TestInbox_DrainInOrder(t *testing.T) {
	inbox := NewInbox(10)
	ctx := context.Background()

	inbox.Notify(ctx, domain.Notification{Title: "first"})
	inbox.Notify(ctx, domain.Notification{Title: "second"})

	got := inbox.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "second", got[1].Title)
	assert.Equal(t, 0, inbox.Len())
	assert.Empty(t, inbox.Drain())
}

func TestInbox_DropsOldestWhenFull(t *testing.T) {
	inbox := NewInbox(2)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		inbox.Notify(ctx, domain.Notification{Title: fmt.Sprintf("n%d", i)})
	}

	got := inbox.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "n1", got[0].Title)
	assert.Equal(t, "n2", got[1].Title)
	assert.Equal(t, 1, inbox.Dropped())
}

func TestSafe_RecoversPanics(t *testing.T) {
	panicking := SinkFunc(func(context.Context, domain.Notification) {
		panic("toast bus down")
	})

	sink := Safe(panicking, logger.NewNop())

	assert.NotPanics(t, func() {
		sink.Notify(context.Background(), domain.Notification{Title: "x"})
	})
}

func TestMulti_And_Counted(t *testing.T) {
	a, b := NewInbox(4), NewInbox(4)
	rec := &countingRecorder{bySeverity: map[string]int{}}

	sink := Counted(Multi(a, nil, b), rec)
	sink.Notify(context.Background(), domain.Notification{Title: "t", Severity: domain.SeverityError})
	sink.Notify(context.Background(), domain.Notification{Title: "t", Severity: domain.SeveritySuccess})

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 1, rec.bySeverity["error"])
	assert.Equal(t, 1, rec.bySeverity["success"])
}

func TestLogSink(t *testing.T) {
	sink := NewLogSink(logger.NewNop())
	assert.NotPanics(t, func() {
		for _, sev := range []domain.Severity{domain.SeverityError, domain.SeverityWarning, domain.SeverityInfo} {
			sink.Notify(context.Background(), domain.Notification{Title: "t", Severity: sev})
		}
	})
}
