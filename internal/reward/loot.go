package reward

import (
	"math/rand/v2"

	"github.com/udisondev/encounters/internal/config"
	"github.com/udisondev/encounters/internal/model"
)

// Crate capacity bounds.
const (
	MinLootItems = 1
	MaxLootItems = 24
)

// Roller picks crate contents from a loot table.
// Не потокобезопасен: используется из цикла движка.
type Roller struct {
	rng *rand.Rand
}

// NewRoller creates a roller. rng may be nil for a random seed.
func NewRoller(rng *rand.Rand) *Roller {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Roller{rng: rng}
}

// Roll shuffles the table and takes distinct entries until the rolled item
// count is reached. Each amount is drawn from [MinAmount, MaxAmount).
func (r *Roller) Roll(table config.LootTable) []model.ItemStack {
	if !table.Enabled || len(table.Items) == 0 {
		return nil
	}

	count := min(max(r.between(table.MinItems, table.MaxItems), MinLootItems), MaxLootItems)

	entries := append([]config.LootItem(nil), table.Items...)
	r.rng.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})

	seen := make(map[config.LootItem]struct{}, len(entries))
	out := make([]model.ItemStack, 0, min(count, len(entries)))
	for _, e := range entries {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}

		amount := r.between(e.MinAmount, e.MaxAmount)
		if amount <= 0 {
			continue
		}
		out = append(out, model.ItemStack{ShortName: e.ShortName, Amount: amount, SkinID: e.SkinID})
		if len(out) >= count {
			break
		}
	}
	return out
}

// between returns a value in [lo, hi), or lo when the range is empty.
func (r *Roller) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.IntN(hi-lo)
}
