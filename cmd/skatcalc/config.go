package main

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/jenafrank/skatsearch/engine"
	"github.com/jenafrank/skatsearch/pimc"
	"github.com/jenafrank/skatsearch/solver"
)

// dealConfig is the JSON deal description. Card fields hold mnemonic sets
// ("CJ CA C9"); GameType accepts the engine variants plus the four suit
// labels, which select a Suit game on the transformed deal.
type dealConfig struct {
	DeclarerCards string `mapstructure:"declarer_cards"`
	LeftCards     string `mapstructure:"left_cards"`
	RightCards    string `mapstructure:"right_cards"`
	GameType      string `mapstructure:"game_type"`
	StartPlayer   string `mapstructure:"start_player"`
	Mode          string `mapstructure:"mode"`

	TrickCards          string `mapstructure:"trick_cards"`
	TrickSuit           string `mapstructure:"trick_suit"`
	DeclarerStartPoints uint8  `mapstructure:"declarer_start_points"`
}

func loadDeal(path string) (*dealConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading deal file %s", path)
	}

	var deal dealConfig
	if err := v.Unmarshal(&deal); err != nil {
		return nil, errors.Wrapf(err, "parsing deal file %s", path)
	}
	return &deal, nil
}

// context builds the engine context. For the Spades, Hearts and Diamonds
// suit games the deal is transformed onto Clubs; the returned
// transformation maps result cards back for display.
func (d *dealConfig) context() (engine.Context, *engine.Transformation, error) {
	declarer, err := engine.ParseCards(d.DeclarerCards)
	if err != nil {
		return engine.Context{}, nil, errors.Wrap(err, "declarer_cards")
	}
	left, err := engine.ParseCards(d.LeftCards)
	if err != nil {
		return engine.Context{}, nil, errors.Wrap(err, "left_cards")
	}
	right, err := engine.ParseCards(d.RightCards)
	if err != nil {
		return engine.Context{}, nil, errors.Wrap(err, "right_cards")
	}

	gameType, transform := parseGame(d.GameType)
	start, err := parseStartPlayer(d.StartPlayer)
	if err != nil {
		return engine.Context{}, nil, err
	}

	ctx := engine.NewContext(declarer, left, right, gameType, start)
	ctx.DeclarerStartPoints = d.DeclarerStartPoints

	if d.TrickCards != "" {
		trick, err := engine.ParseCards(d.TrickCards)
		if err != nil {
			return engine.Context{}, nil, errors.Wrap(err, "trick_cards")
		}
		ctx.TrickCards = trick
		suit, err := parseTrickSuit(d.TrickSuit, gameType)
		if err != nil {
			return engine.Context{}, nil, err
		}
		ctx.TrickSuit = suit
	}

	if transform != nil {
		ctx = ctx.Transformed(*transform)
	}

	if err := ctx.Validate(); err != nil {
		return engine.Context{}, nil, errors.Wrap(err, "invalid deal")
	}
	return ctx, transform, nil
}

// parseGame maps a game tag to the engine variant. The suit labels select
// a Suit game plus the corresponding transformation. Unknown tags fall
// back to Suit with a warning instead of aborting.
func parseGame(tag string) (engine.Game, *engine.Transformation) {
	switch tag {
	case "Suit", "Clubs", "suit", "clubs":
		return engine.Suit, nil
	case "Spades", "spades":
		t := engine.SpadesSwitch
		return engine.Suit, &t
	case "Hearts", "hearts":
		t := engine.HeartsSwitch
		return engine.Suit, &t
	case "Diamonds", "diamonds":
		t := engine.DiamondsSwitch
		return engine.Suit, &t
	case "Grand", "grand":
		return engine.Grand, nil
	case "Null", "null":
		return engine.Null, nil
	default:
		log.Warn().Str("game_type", tag).Msg("unknown game type, defaulting to Suit")
		return engine.Suit, nil
	}
}

func parseStartPlayer(tag string) (engine.Player, error) {
	switch tag {
	case "Declarer", "declarer", "D", "":
		return engine.Declarer, nil
	case "Left", "left", "L":
		return engine.Left, nil
	case "Right", "right", "R":
		return engine.Right, nil
	default:
		return 0, errors.Errorf("unknown start player %q", tag)
	}
}

// parseTrickSuit accepts a suit name or a card mnemonic, whose follow-suit
// set under the game is taken.
func parseTrickSuit(tag string, gameType engine.Game) (engine.Cards, error) {
	switch tag {
	case "Trump", "trump":
		if trump := gameType.Trump(); trump != 0 {
			return trump, nil
		}
		return 0, errors.New("trick_suit Trump invalid in a null game")
	case "Clubs", "clubs":
		return engine.SuitForCard(engine.SevenOfClubs, gameType), nil
	case "Spades", "spades":
		return engine.SuitForCard(engine.SevenOfSpades, gameType), nil
	case "Hearts", "hearts":
		return engine.SuitForCard(engine.SevenOfHearts, gameType), nil
	case "Diamonds", "diamonds":
		return engine.SuitForCard(engine.SevenOfDiamonds, gameType), nil
	}

	card, err := engine.ParseCards(tag)
	if err != nil || card.Count() != 1 {
		return 0, errors.Errorf("unknown trick suit %q", tag)
	}
	return engine.SuitForCard(card, gameType), nil
}

func parseAcceleration(tag string) (solver.AccelerationMode, error) {
	switch tag {
	case "alphabeta", "":
		return solver.AlphaBetaAccelerating, nil
	case "winning":
		return solver.WinningOnly, nil
	case "none":
		return solver.NotAccelerating, nil
	default:
		return 0, errors.Errorf("unknown acceleration mode %q", tag)
	}
}

// mapBack undoes the suit transformation for display.
func mapBack(cards engine.Cards, t *engine.Transformation) engine.Cards {
	if t == nil {
		return cards
	}
	return engine.SwitchCards(cards, *t)
}

// problemConfig is the JSON description of a PIMC problem.
type problemConfig struct {
	GameType  string `mapstructure:"game_type"`
	MyPlayer  string `mapstructure:"my_player"`
	MyCards   string `mapstructure:"my_cards"`
	AllCards  string `mapstructure:"all_cards"`
	Threshold uint8  `mapstructure:"threshold"`

	PreviousCard string `mapstructure:"previous_card"`
	NextCard     string `mapstructure:"next_card"`

	DeclarerStartPoints uint8 `mapstructure:"declarer_start_points"`

	FactsPrevious factsConfig `mapstructure:"facts_previous"`
	FactsNext     factsConfig `mapstructure:"facts_next"`
}

type factsConfig struct {
	NoTrump    bool `mapstructure:"no_trump"`
	NoClubs    bool `mapstructure:"no_clubs"`
	NoSpades   bool `mapstructure:"no_spades"`
	NoHearts   bool `mapstructure:"no_hearts"`
	NoDiamonds bool `mapstructure:"no_diamonds"`
}

func (f factsConfig) facts() pimc.Facts {
	return pimc.Facts{
		NoTrump:    f.NoTrump,
		NoClubs:    f.NoClubs,
		NoSpades:   f.NoSpades,
		NoHearts:   f.NoHearts,
		NoDiamonds: f.NoDiamonds,
	}
}

func loadProblem(path string) (pimc.Problem, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return pimc.Problem{}, errors.Wrapf(err, "reading problem file %s", path)
	}

	var cfg problemConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return pimc.Problem{}, errors.Wrapf(err, "parsing problem file %s", path)
	}

	myCards, err := engine.ParseCards(cfg.MyCards)
	if err != nil {
		return pimc.Problem{}, errors.Wrap(err, "my_cards")
	}
	allCards, err := engine.ParseCards(cfg.AllCards)
	if err != nil {
		return pimc.Problem{}, errors.Wrap(err, "all_cards")
	}
	prevCard, err := engine.ParseCards(cfg.PreviousCard)
	if err != nil {
		return pimc.Problem{}, errors.Wrap(err, "previous_card")
	}
	nextCard, err := engine.ParseCards(cfg.NextCard)
	if err != nil {
		return pimc.Problem{}, errors.Wrap(err, "next_card")
	}

	gameType, _ := parseGame(cfg.GameType)
	myPlayer, err := parseStartPlayer(cfg.MyPlayer)
	if err != nil {
		return pimc.Problem{}, err
	}

	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = 61
		if gameType == engine.Null {
			threshold = 1
		}
	}

	return pimc.Problem{
		GameType:            gameType,
		MyPlayer:            myPlayer,
		MyCards:             myCards,
		PreviousCard:        prevCard,
		NextCard:            nextCard,
		AllCards:            allCards,
		Threshold:           threshold,
		DeclarerStartPoints: cfg.DeclarerStartPoints,
		FactsPrevious:       cfg.FactsPrevious.facts(),
		FactsNext:           cfg.FactsNext.facts(),
	}, nil
}
