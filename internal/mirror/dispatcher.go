package mirror

import "ado-issue-sync/internal/model"

// foundOutcomes maps actions to their outcome when a linked work item exists.
var foundOutcomes = map[model.Action]Outcome{
	model.ActionEdited:    OutcomeUpdate,
	model.ActionCreated:   OutcomeComment,
	model.ActionClosed:    OutcomeClose,
	model.ActionReopened:  OutcomeReopen,
	model.ActionLabeled:   OutcomeLabelAdd,
	model.ActionUnlabeled: OutcomeLabelRemove,
}

var unimplementedActions = map[model.Action]bool{
	model.ActionAssigned:    true,
	model.ActionDeleted:     true,
	model.ActionTransferred: true,
}

// Decide maps an action and the finder's answer to an outcome. It must not be
// called with FindFailed or FindUnresolved.
func Decide(action model.Action, status FindStatus) (Outcome, SkipReason) {
	if unimplementedActions[action] {
		return OutcomeSkip, ReasonUnimplemented
	}

	if action == model.ActionOpened {
		if status == FindFound {
			return OutcomeSkip, ReasonAlreadyExists
		}
		return OutcomeCreate, ReasonNone
	}

	outcome, known := foundOutcomes[action]
	if !known {
		return OutcomeSkip, ReasonUnhandled
	}
	if status != FindFound {
		return OutcomeSkip, ReasonNotFound
	}
	return outcome, ReasonNone
}
