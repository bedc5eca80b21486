// Package main provides the combat simulator binary: it rolls an encounter
// from a fixed roster, drives it for a number of rounds through the action
// processor, and verifies that replaying the produced event log rebuilds the
// final initiative state. With -persist it also appends the log to the
// PostgreSQL event store.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/combatcore/internal/config"
	"github.com/cory-johannsen/combatcore/internal/game/action"
	"github.com/cory-johannsen/combatcore/internal/game/concentration"
	"github.com/cory-johannsen/combatcore/internal/game/condition"
	"github.com/cory-johannsen/combatcore/internal/game/dice"
	"github.com/cory-johannsen/combatcore/internal/game/event"
	"github.com/cory-johannsen/combatcore/internal/game/grid"
	"github.com/cory-johannsen/combatcore/internal/game/initiative"
	"github.com/cory-johannsen/combatcore/internal/game/spell"
	"github.com/cory-johannsen/combatcore/internal/game/turn"
	"github.com/cory-johannsen/combatcore/internal/observability"
	"github.com/cory-johannsen/combatcore/internal/scripting"
	"github.com/cory-johannsen/combatcore/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	seed := flag.Uint64("seed", 0, "dice seed; overrides the configured seed when non-zero")
	rounds := flag.Int("rounds", 3, "number of rounds to simulate")
	persist := flag.Bool("persist", false, "append the event log to the PostgreSQL event store")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	diceSeed := cfg.Combat.Seed
	if *seed != 0 {
		diceSeed = *seed
	}
	var src dice.Source
	if diceSeed == 0 {
		// Unseeded runs use the crypto source. Replay folds the recorded
		// events rather than re-rolling, so it stays verifiable.
		src = dice.NewCryptoSource()
	} else {
		src = dice.NewSeededSource(diceSeed)
	}
	roller := dice.NewLoggedRoller(src, logger)

	spellStart := time.Now()
	spells, err := spell.LoadDirectory(cfg.Combat.SpellDir)
	if err != nil {
		logger.Fatal("loading spell definitions", zap.Error(err))
	}
	logger.Info("loaded spell definitions",
		zap.Int("count", len(spells.All())),
		zap.Duration("elapsed", time.Since(spellStart)),
	)

	sessionID := uuid.New()
	logger.Info("starting simulation",
		zap.String("session_id", sessionID.String()),
		zap.Uint64("seed", diceSeed),
		zap.Int("rounds", *rounds),
	)

	sim, err := newSimulation(sessionID, roller.Source(), spells, cfg.Combat, logger)
	if err != nil {
		logger.Fatal("building encounter", zap.Error(err))
	}
	if err := sim.run(*rounds); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	// Replay the full log and check it matches the live state.
	replayed, err := event.BuildState(sim.history.Applied())
	if err != nil {
		logger.Fatal("replaying event log", zap.Error(err))
	}
	logger.Info("replay verified",
		zap.Int("events", len(sim.history.Applied())),
		zap.Int("final_round", replayed.RoundNumber),
		zap.String("active_creature", replayed.ActiveCreatureID()),
	)

	if *persist {
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)

		store := postgres.NewEventStore(pool.DB())
		first, err := store.Append(ctx, sessionID, sim.history.Applied())
		if err != nil {
			logger.Fatal("persisting event log", zap.Error(err))
		}
		logger.Info("event log persisted",
			zap.Int64("first_sequence", first),
			zap.Int("events", len(sim.history.Applied())),
		)
	}

	logger.Info("simulation complete", zap.Duration("elapsed", time.Since(start)))
}

// simulation drives one encounter: a fixed two-sided roster on a square grid,
// each creature attacking the nearest living enemy on its turn.
type simulation struct {
	sessionID uuid.UUID
	src       dice.Source
	spells    *spell.Registry
	grid      *grid.SquareGrid
	triggers  *scripting.Evaluator
	logger    *zap.Logger

	creatures map[string]*action.Creature
	sides     map[string]string
	state     initiative.RoundState
	history   event.History
}

func newSimulation(sessionID uuid.UUID, src dice.Source, spells *spell.Registry, cfg config.CombatConfig, logger *zap.Logger) (*simulation, error) {
	g, err := grid.NewSquareGrid(cfg.GridWidth, cfg.GridHeight)
	if err != nil {
		return nil, err
	}

	sim := &simulation{
		sessionID: sessionID,
		src:       src,
		spells:    spells,
		grid:      g,
		triggers:  scripting.NewEvaluator(cfg.ScriptInstructionLimit),
		logger:    logger,
		creatures: map[string]*action.Creature{
			"fighter": {
				ID: "fighter", Name: "Fighter", AC: 17, HP: 24, MaxHP: 24, Speed: 30,
				Weapons:     []action.Weapon{{ID: "longsword", Name: "Longsword", AttackBonus: 5, Damage: "1d8+3"}},
				AbilityMods: map[string]int{"str": 3, "dex": 2, "wis": 1},
			},
			"goblin-1": {
				ID: "goblin-1", Name: "Goblin", AC: 13, HP: 7, MaxHP: 7, Speed: 30,
				Weapons:     []action.Weapon{{ID: "scimitar", Name: "Scimitar", AttackBonus: 4, Damage: "1d6+2"}},
				AbilityMods: map[string]int{"str": 0, "dex": 2, "wis": -1},
			},
			"goblin-2": {
				ID: "goblin-2", Name: "Goblin", AC: 13, HP: 7, MaxHP: 7, Speed: 30,
				Weapons:     []action.Weapon{{ID: "scimitar", Name: "Scimitar", AttackBonus: 4, Damage: "1d6+2"}},
				AbilityMods: map[string]int{"str": 0, "dex": 2, "wis": -1},
			},
		},
		sides: map[string]string{
			"fighter":  "party",
			"goblin-1": "foes",
			"goblin-2": "foes",
		},
		history: event.NewHistory(nil),
	}

	positions := map[string]grid.Square{
		"fighter":  {X: 2, Y: 2},
		"goblin-1": {X: 3, Y: 2},
		"goblin-2": {X: 3, Y: 3},
	}
	for id, sq := range positions {
		if err := g.Place(id, sq); err != nil {
			return nil, err
		}
	}

	modifiers := make(map[string]int, len(sim.creatures))
	for id, c := range sim.creatures {
		modifiers[id] = c.AbilityMods["dex"]
	}
	order := initiative.RollOrder(modifiers, src)

	if err := sim.apply(event.EncounterStarted{
		Meta:  event.NewMeta(sessionID),
		Order: order,
		Seed:  0,
	}); err != nil {
		return nil, err
	}
	for _, e := range order {
		logger.Info("initiative rolled",
			zap.String("creature_id", e.CreatureID),
			zap.Int("roll", e.Roll),
			zap.Int("modifier", e.Modifier),
			zap.Int("total", e.Total),
		)
	}
	return sim, nil
}

// apply folds one event into the live state and records it in the history.
func (s *simulation) apply(ev event.Event) error {
	next, err := event.FoldState(s.state, []event.Event{ev})
	if err != nil {
		return err
	}
	s.state = next
	s.history = s.history.Append(ev)
	return nil
}

// run simulates full rounds until the round budget is spent or one side has
// no living creatures left.
func (s *simulation) run(rounds int) error {
	for s.state.RoundNumber <= rounds {
		actorID := s.state.ActiveCreatureID()
		if actorID == "" {
			return nil
		}
		if err := s.takeTurn(actorID); err != nil {
			return err
		}
		if s.livingEnemies("party") == 0 || s.livingEnemies("foes") == 0 {
			s.logger.Info("one side defeated, ending simulation",
				zap.Int("round", s.state.RoundNumber))
			return nil
		}
		if err := s.apply(event.TurnEnded{Meta: event.NewMeta(s.sessionID), CreatureID: actorID}); err != nil {
			return err
		}
	}
	return nil
}

// takeTurn has the active creature attack the first living enemy in
// initiative order.
func (s *simulation) takeTurn(actorID string) error {
	actor := s.creatures[actorID]
	targetID := s.pickTarget(actorID)
	if targetID == "" {
		return nil
	}

	ctx := &action.ActionContext{
		SessionID:     s.sessionID,
		Round:         s.state.RoundNumber,
		Phase:         turn.Start(actorID, actor.Speed),
		Creatures:     s.creatures,
		Grid:          s.grid,
		Conditions:    map[string]condition.Set{},
		Concentration: concentration.State{},
		Spells:        s.spells,
		Dice:          s.src,
		Triggers:      s.triggers,
	}

	res := action.Process(action.Attack{ActorID: actorID, TargetID: targetID}, ctx)
	if res.Status != action.Valid {
		s.logger.Warn("attack rejected",
			zap.String("actor", actorID),
			zap.String("reason", res.Reason),
		)
		return nil
	}

	for _, ev := range res.Events {
		switch e := ev.(type) {
		case event.AttackResolved:
			// Commit the outcome to the roster snapshot for the next turn.
			s.creatures[e.TargetID].HP = e.NewHP
			s.logger.Info("attack resolved",
				zap.String("attacker", e.AttackerID),
				zap.String("target", e.TargetID),
				zap.Int("roll", e.AttackRoll),
				zap.Bool("hit", e.Hit),
				zap.Bool("critical", e.Critical),
				zap.Int("damage", e.Damage),
				zap.Int("new_hp", e.NewHP),
			)
			s.history = s.history.Append(e)
		case event.CreatureDefeated:
			s.logger.Info("creature defeated",
				zap.String("creature_id", e.CreatureID),
				zap.String("defeated_by", e.DefeatedBy),
			)
			s.history = s.history.Append(e)
			s.grid.Remove(e.CreatureID)
			if err := s.apply(event.CreatureRemovedFromCombat{
				Meta:       event.NewMeta(s.sessionID),
				CreatureID: e.CreatureID,
				Reason:     "defeated",
			}); err != nil {
				return err
			}
		default:
			s.history = s.history.Append(ev)
		}
	}
	return nil
}

// pickTarget returns the first living enemy of actorID in initiative order.
func (s *simulation) pickTarget(actorID string) string {
	side := s.sides[actorID]
	for _, entry := range s.state.Order {
		if s.sides[entry.CreatureID] != side && s.creatures[entry.CreatureID].HP > 0 {
			return entry.CreatureID
		}
	}
	return ""
}

// livingEnemies counts living creatures not on the given side.
func (s *simulation) livingEnemies(side string) int {
	n := 0
	for id, c := range s.creatures {
		if s.sides[id] != side && c.HP > 0 {
			n++
		}
	}
	return n
}
