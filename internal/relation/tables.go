package relation

import "github.com/misterclayt0n/prescribe/internal/models"

// Curated variants, keyed by lowercased canonical name.

var squatVariants = map[string]float64{
	"back squat":         1.00,
	"squat":              1.00,
	"low bar squat":      1.00,
	"competition squat":  1.00,
	"kniebeuge":          1.00,
	"high bar squat":     0.95,
	"front squat":        0.85,
	"frontkniebeuge":     0.85,
	"safety bar squat":   0.90,
	"ssb squat":          0.90,
	"cambered bar squat": 0.90,
	"box squat":          0.90,
	"anderson squat":     0.90,
	"pause squat":        0.85,
	"paused squat":       0.85,
	"pin squat":          0.85,
	"tempo squat":        0.80,
	"zercher squat":      0.75,
	"overhead squat":     0.60,
	"half squat":         1.10,
}

var benchVariants = map[string]float64{
	"bench press":              1.00,
	"bench":                    1.00,
	"competition bench":        1.00,
	"paused bench":             1.00,
	"bankdrücken":              1.00,
	"touch and go bench":       1.02,
	"touch and go bench press": 1.02,
	"slingshot bench":          1.10,
	"board press":              1.05,
	"decline bench press":      1.05,
	"wide grip bench":          0.95,
	"long pause bench":         0.95,
	"close grip bench":         0.90,
	"close grip bench press":   0.90,
	"reverse grip bench":       0.90,
	"spoto press":              0.90,
	"larsen press":             0.90,
	"floor press":              0.90,
	"pin press":                0.90,
	"incline bench press":      0.80,
	"schrägbankdrücken":        0.80,
}

var deadliftVariants = map[string]float64{
	"deadlift":              1.00,
	"conventional deadlift": 1.00,
	"sumo deadlift":         1.00,
	"kreuzheben":            1.00,
	"trap bar deadlift":     1.05,
	"hex bar deadlift":      1.05,
	"block pull":            1.10,
	"rack pull":             1.15,
	"deficit deadlift":      0.90,
	"paused deadlift":       0.85,
	"snatch grip deadlift":  0.80,
	"romanian deadlift":     0.70,
	"stiff leg deadlift":    0.70,
}

var overheadVariants = map[string]float64{
	"overhead press":        1.00,
	"ohp":                   1.00,
	"military press":        1.00,
	"strict press":          1.00,
	"standing press":        1.00,
	"schulterdrücken":       1.00,
	"push press":            1.20,
	"seated overhead press": 0.90,
	"behind the neck press": 0.85,
	"z press":               0.80,
}

// noCorrelationNames are exact names that never scale from a base lift.
var noCorrelationNames = map[string]bool{
	"back extension":  true,
	"reverse hyper":   true,
	"hip thrust":      true,
	"glute ham raise": true,
	"face pull":       true,
	"power clean":     true,
	"hang clean":      true,
	"snatch":          true,
	"clean and jerk":  true,
	"thruster":        true,
	"dips":            true,
	"farmers walk":    true,
	"sled push":       true,
	"box jump":        true,
	"burpee":          true,
	"muscle up":       true,
}

var variantTables = []struct {
	lift     models.BaseLift
	variants map[string]float64
}{
	{models.LiftSquat, squatVariants},
	{models.LiftBench, benchVariants},
	{models.LiftDeadlift, deadliftVariants},
	{models.LiftOverhead, overheadVariants},
}
