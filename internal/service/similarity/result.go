package similarity

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

// LinkOutcome describes what Link did to the stored groups.
type LinkOutcome string

const (
	// LinkCreated means neither mushroom was grouped; a new group holds both.
	LinkCreated LinkOutcome = "CREATED"
	// LinkJoined means one mushroom joined the other's group.
	LinkJoined LinkOutcome = "JOINED"
	// LinkMerged means two groups were merged into the first mushroom's group.
	LinkMerged LinkOutcome = "MERGED"
	// LinkAlreadyLinked means both were already in one group; nothing changed.
	LinkAlreadyLinked LinkOutcome = "ALREADY_LINKED"
)

// LinkResult is returned by Link.
type LinkResult struct {
	Outcome LinkOutcome
	Group   domain.SimilarityGroup
	// RemovedGroupID is set for LinkMerged.
	RemovedGroupID *uuid.UUID
}

// UnlinkResult is returned by UnlinkAll.
type UnlinkResult struct {
	GroupsUpdated int
	GroupsDeleted int
}

// RepairReport summarises a Repair run.
type RepairReport struct {
	GroupsScanned int
	GroupsMerged  int
	GroupsPruned  int
}
