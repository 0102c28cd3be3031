package blackjack

import "slices"

// Action is an action name as exchanged with the dispatcher.
type Action string

const (
	ActionRestore     Action = "RESTORE"
	ActionDeal        Action = "DEAL"
	ActionHit         Action = "HIT"
	ActionStand       Action = "STAND"
	ActionDouble      Action = "DOUBLE"
	ActionSplit       Action = "SPLIT"
	ActionSurrender   Action = "SURRENDER"
	ActionInsurance   Action = "INSURANCE"
	ActionNoInsurance Action = "NOINSURANCE"
	ActionShowdown    Action = "SHOWDOWN"
	ActionDealerHit   Action = "DEALER-HIT"
)

// Stage is the table-level phase of a round.
type Stage string

const (
	StageReady           Stage = "ready"
	StagePlayerTurnRight Stage = "player-turn-right"
	StagePlayerTurnLeft  Stage = "player-turn-left"
	StageShowdown        Stage = "showdown"
	StageDealerTurn      Stage = "dealer-turn"
)

var stageActions = map[Stage][]Action{
	StageReady:           {ActionRestore, ActionDeal},
	StagePlayerTurnRight: {ActionStand, ActionInsurance, ActionNoInsurance, ActionSurrender, ActionSplit, ActionHit, ActionDouble},
	StagePlayerTurnLeft:  {ActionStand, ActionHit, ActionDouble},
	StageShowdown:        {ActionShowdown, ActionStand},
	StageDealerTurn:      {ActionDealerHit},
}

// IsActionAllowed reports whether action may be dispatched in stage. It
// looks only at the stage; per-hand legality lives in Hand.Actions.
// RESTORE is allowed everywhere, including unknown stages.
func IsActionAllowed(action Action, stage Stage) bool {
	if action == ActionRestore {
		return true
	}
	return slices.Contains(stageActions[stage], action)
}
