package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/battlecard/internal/api"
	"github.com/abhisek/battlecard/internal/card"
	"github.com/abhisek/battlecard/internal/router"
	"github.com/abhisek/battlecard/internal/screens/player"
)

type emptyClient struct{}

func (emptyClient) NextCard(context.Context, string) (*card.Card, error) { return nil, api.ErrNotReady }
func (emptyClient) Stats(context.Context) (*card.Stats, error)   { return &card.Stats{}, nil }
func (emptyClient) Roadmap(context.Context) ([]card.RoadmapItem, error) {
	return nil, nil
}
func (emptyClient) SubmitReview(context.Context, card.Review) error { return nil }

func TestAppModel_WindowSize(t *testing.T) {
	m := newAppModel(player.Deps{Client: emptyClient{}})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	am := updated.(AppModel)
	assert.Equal(t, 100, am.width)
	assert.Equal(t, 30, am.height)
}

func TestAppModel_CtrlC(t *testing.T) {
	m := newAppModel(player.Deps{Client: emptyClient{}})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppModel_EscAtRootIsForwarded(t *testing.T) {
	m := newAppModel(player.Deps{Client: emptyClient{}})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		_, isPop := cmd().(router.PopScreenMsg)
		assert.False(t, isPop)
	}
}
