package submitjob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigboard/internal/common/errors"
	"gigboard/internal/common/logger"
	"gigboard/internal/creator"
	"gigboard/internal/session"
	"gigboard/internal/store"
)

func TestHandler_Execute(t *testing.T) {
	valid := creator.Form{Heading: "Move sofa", Description: "Third floor", Task: "Moving", UstarPoints: "0"}

	tests := []struct {
		name        string
		form        creator.Form
		wantPending bool
		wantCode    errors.ErrorCode
	}{
		{name: "valid form opens confirmation", form: valid, wantPending: true},
		{name: "zero points are allowed", form: creator.Form{Heading: "h", Description: "d", Task: "t", UstarPoints: "000"}, wantPending: true},
		{name: "missing task", form: creator.Form{Heading: "h", Description: "d", UstarPoints: "1"}, wantCode: errors.ErrCodeJobFormValidationFailed},
		{name: "padded points", form: creator.Form{Heading: "h", Description: "d", Task: "t", UstarPoints: " 12 "}, wantCode: errors.ErrCodeJobFormValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boards := session.NewBoards(store.NewMemoryStore())
			h := NewHandler(LoadConfig(), boards, nil, logger.NewNoOpLogger())

			out, err := h.Execute(context.Background(), &Input{BoardID: "b1", Form: tt.form})
			if tt.wantCode != "" {
				stdErr, ok := errors.AsStandardError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantCode, stdErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPending, out.ConfirmPending)
			assert.Equal(t, tt.form, out.Form)
			assert.Empty(t, out.Notifications)

			board, err := boards.Open(context.Background(), "b1")
			require.NoError(t, err)
			assert.True(t, board.Flow.ConfirmPending())
			assert.Empty(t, board.Flow.Jobs())
		})
	}
}
