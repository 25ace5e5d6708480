package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type memTimelineRepo struct {
	gotCompany string
	gotLimit   int
	entries    []Entry
}

func (m *memTimelineRepo) ListByCompany(_ context.Context, companyID string, limit int) ([]Entry, error) {
	m.gotCompany = companyID
	m.gotLimit = limit
	if limit < len(m.entries) {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

func TestTimelineRequiresCompany(t *testing.T) {
	svc := NewService(&memTimelineRepo{})
	_, err := svc.Timeline(context.Background(), "", 10)
	require.Error(t, err)
}

func TestTimelineClampsLimit(t *testing.T) {
	repo := &memTimelineRepo{}
	svc := NewService(repo)

	_, err := svc.Timeline(context.Background(), "company-1", 0)
	require.NoError(t, err)
	require.Equal(t, 100, repo.gotLimit)

	_, err = svc.Timeline(context.Background(), "company-1", 9999)
	require.NoError(t, err)
	require.Equal(t, 100, repo.gotLimit)

	_, err = svc.Timeline(context.Background(), "company-1", 25)
	require.NoError(t, err)
	require.Equal(t, 25, repo.gotLimit)
	require.Equal(t, "company-1", repo.gotCompany)
}
