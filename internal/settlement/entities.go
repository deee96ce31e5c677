package settlement

import (
	"log/slog"
	"sort"

	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
)

// resolveSettlingEntities maps every participant balance onto the entity
// responsible for settling it. Heads (family heads and independent
// participants) are their own entity; a dependent rolls up to its family's
// head via the familyID -> headID lookup.
//
// A dependent whose family reference does not resolve is excluded from
// settlement aggregation entirely. Treating orphans as independent would
// silently change who pays, so the exclusion is logged and left to the
// caller's data to fix.
func resolveSettlingEntities(participants []*models.Participant, families []*models.Family, balances map[string]*models.Balance) map[string]*models.SettlingBalance {
	familyHead := make(map[string]string, len(families))
	for _, f := range families {
		familyHead[f.ID] = f.HeadID
	}

	settling := make(map[string]*models.SettlingBalance)
	for _, p := range participants {
		if p.IsHead {
			settling[p.ID] = &models.SettlingBalance{
				ID:      p.ID,
				Name:    p.Name,
				Members: []models.MemberBalance{},
			}
		}
	}

	// Fold member balances in participant-ID order so the member lists come
	// out identical across runs.
	ids := make([]string, 0, len(balances))
	for id := range balances {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		b := balances[id]

		var entityID string
		if b.IsHead {
			entityID = b.ID
		} else if b.FamilyID != "" {
			entityID = familyHead[b.FamilyID]
		}

		entity, ok := settling[entityID]
		if !ok {
			slog.Warn("participant excluded from settling aggregation",
				"participant_id", b.ID,
				"family_id", b.FamilyID,
			)
			continue
		}

		entity.NetBalance += b.NetBalance
		entity.Members = append(entity.Members, models.MemberBalance{
			Name:       b.Name,
			NetBalance: b.NetBalance,
		})
	}

	return settling
}
