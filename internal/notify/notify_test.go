package notify

import (
	"errors"
	"testing"
)

type memIDs struct {
	id    uint32
	saves int
}

func (m *memIDs) NotificationID() (uint32, error) { return m.id, nil }

func (m *memIDs) SaveNotificationID(id uint32) error {
	m.id = id
	m.saves++
	return nil
}

func TestUrgencyValues(t *testing.T) {
	if UrgencyLow != 0 {
		t.Errorf("UrgencyLow = %d, want 0", UrgencyLow)
	}
	if UrgencyNormal != 1 {
		t.Errorf("UrgencyNormal = %d, want 1", UrgencyNormal)
	}
	if UrgencyCritical != 2 {
		t.Errorf("UrgencyCritical = %d, want 2", UrgencyCritical)
	}
}

func TestScoreNotification(t *testing.T) {
	tests := []struct {
		name      string
		score     Score
		wantTitle string
		wantBody  string
	}{
		{
			name:      "upvote",
			score:     Score{Score: 5, Delta: 1, Chance: 0.125},
			wantTitle: "Upvoted - 5 score",
			wantBody:  "12.50% chance of playing",
		},
		{
			name:      "downvote",
			score:     Score{Score: -1, Delta: -1, Chance: 0.0001},
			wantTitle: "Downvoted - -1 score",
			wantBody:  "0.01% chance of playing",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := ScoreNotification(tt.score, 7)
			if n.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", n.Title, tt.wantTitle)
			}
			if n.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", n.Body, tt.wantBody)
			}
			if n.ReplacesID != 7 {
				t.Errorf("ReplacesID = %d, want 7", n.ReplacesID)
			}
			if n.Icon != scoreIcon {
				t.Errorf("Icon = %q, want %q", n.Icon, scoreIcon)
			}
		})
	}
}

func TestSendScore_ReplacesPrevious(t *testing.T) {
	mock := NewMock()
	ids := &memIDs{}

	if err := SendScore(mock, ids, Score{Score: 3, Delta: 1}); err != nil {
		t.Fatalf("SendScore() error = %v", err)
	}
	if err := SendScore(mock, ids, Score{Score: 4, Delta: 1}); err != nil {
		t.Fatalf("SendScore() error = %v", err)
	}

	sent := mock.Sent()
	if len(sent) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(sent))
	}
	if sent[0].ReplacesID != 0 {
		t.Errorf("first ReplacesID = %d, want 0", sent[0].ReplacesID)
	}
	if sent[1].ReplacesID != 1 {
		t.Errorf("second ReplacesID = %d, want 1", sent[1].ReplacesID)
	}
	if ids.saves != 1 {
		t.Errorf("saved id %d times, want 1", ids.saves)
	}
}

func TestSendScore_NilStoreAndErrors(t *testing.T) {
	mock := NewMock()
	if err := SendScore(mock, nil, Score{Score: 1, Delta: -1}); err != nil {
		t.Fatalf("SendScore() error = %v", err)
	}

	mock.SetError(errors.New("bus closed"))
	if err := SendScore(mock, nil, Score{}); err == nil {
		t.Error("SendScore() expected error")
	}
}
