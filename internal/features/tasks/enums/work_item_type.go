package tasks_enums

type WorkItemType string

const (
	WorkItemTypeEpic    WorkItemType = "EPIC"
	WorkItemTypeFeature WorkItemType = "FEATURE"
	WorkItemTypeStory   WorkItemType = "STORY"
	WorkItemTypeTask    WorkItemType = "TASK"
	WorkItemTypeBug     WorkItemType = "BUG"
	WorkItemTypeSubtask WorkItemType = "SUBTASK"
)

// workItemRanks fixes the hierarchy ordering: a parent must strictly outrank
// its children. TASK and BUG share a rank and so can never nest in each other.
var workItemRanks = map[WorkItemType]int{
	WorkItemTypeEpic:    0,
	WorkItemTypeFeature: 1,
	WorkItemTypeStory:   2,
	WorkItemTypeTask:    3,
	WorkItemTypeBug:     3,
	WorkItemTypeSubtask: 4,
}

func (t WorkItemType) IsValid() bool {
	_, ok := workItemRanks[t]
	return ok
}

func (t WorkItemType) Rank() int {
	rank, ok := workItemRanks[t]
	if !ok {
		return -1
	}

	return rank
}

// RequiresParent reports whether a work item of this type cannot exist on
// its own.
func (t WorkItemType) RequiresParent() bool {
	return t == WorkItemTypeSubtask
}
