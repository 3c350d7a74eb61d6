package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDisjoint(t *testing.T) {
	ctx := NewContext(mustCards(t, "SA"), mustCards(t, "SA"), mustCards(t, "SK"), Suit, Declarer)
	require.Error(t, ctx.Validate())
}

func TestValidateHandSizes(t *testing.T) {
	ctx := NewContext(mustCards(t, "SA S7"), mustCards(t, "HA"), mustCards(t, "DA"), Suit, Declarer)
	require.Error(t, ctx.Validate())
}

func TestValidateTrick(t *testing.T) {
	ctx := NewContext(mustCards(t, "SA H7"), mustCards(t, "DA D7"), mustCards(t, "HA HT"), Suit, Declarer)
	ctx.TrickCards = mustCards(t, "HA")

	// Missing trick suit.
	require.Error(t, ctx.Validate())

	// Wrong suit.
	ctx.TrickSuit = Diamonds
	require.Error(t, ctx.Validate())

	ctx.TrickSuit = Hearts
	require.NoError(t, ctx.Validate())

	// Trick card owned by the wrong seat: Left is the previous player of
	// Right, but the HA belongs to Right itself.
	ctx.StartPlayer = Right
	require.Error(t, ctx.Validate())
}

func TestSkat(t *testing.T) {
	declarer := mustCards(t, "CJ SJ HJ DJ CA CT CK CQ C9 C8")
	left := mustCards(t, "SA ST SK SQ S9 S8 S7 HA HT HK")
	right := mustCards(t, "HQ H9 H8 H7 DA DT DK DQ D9 D8")
	ctx := NewContext(declarer, left, right, Suit, Declarer)

	require.Equal(t, mustCards(t, "C7 D7"), ctx.Skat())
	require.Equal(t, uint8(0), ctx.Skat().Points())
}

func TestSwitchCardsInvolution(t *testing.T) {
	for _, tf := range []Transformation{SpadesSwitch, HeartsSwitch, DiamondsSwitch} {
		for i := 0; i < 32; i++ {
			card := Cards(1) << uint(i)
			require.Equal(t, card, SwitchCards(SwitchCards(card, tf), tf))
		}
	}

	// Spot checks.
	require.Equal(t, AceOfSpades, SwitchCards(AceOfClubs, SpadesSwitch))
	require.Equal(t, SevenOfClubs, SwitchCards(SevenOfHearts, HeartsSwitch))
	require.Equal(t, JackOfDiamonds, SwitchCards(JackOfDiamonds, DiamondsSwitch))
}

// A Spades game is the Clubs game of the suit-swapped deal: renaming the
// suits of a deal and transforming it back must reproduce the original
// deal and its value.
func TestSuitSymmetry(t *testing.T) {
	clubsDeal := testContext(t, "SJ CA CT", "CJ SA HA", "HJ DA DT", Suit, Declarer)

	// The same deal written as a Spades game: clubs and spades renamed,
	// Jacks belong to the trump set either way.
	spadesDeal := testContext(t, "SJ SA ST", "CJ CA HA", "HJ DA DT", Suit, Declarer)

	transformed := spadesDeal.Transformed(SpadesSwitch)
	require.Equal(t, clubsDeal.DeclarerCards, transformed.DeclarerCards)
	require.Equal(t, clubsDeal.LeftCards, transformed.LeftCards)
	require.Equal(t, clubsDeal.RightCards, transformed.RightCards)

	require.Equal(t, solveExact(t, clubsDeal), solveExact(t, transformed))
}
