package relation

import "github.com/misterclayt0n/prescribe/internal/models"

type predicate func(normalized) bool

func contains(subs ...string) predicate {
	return func(n normalized) bool {
		for _, s := range subs {
			if n.has(s) {
				return true
			}
		}
		return false
	}
}

func words(ws ...string) predicate {
	return func(n normalized) bool {
		for _, w := range ws {
			if n.word(w) {
				return true
			}
		}
		return false
	}
}

func anyOf(ps ...predicate) predicate {
	return func(n normalized) bool {
		for _, p := range ps {
			if p(n) {
				return true
			}
		}
		return false
	}
}

func not(p predicate) predicate {
	return func(n normalized) bool { return !p(n) }
}

func both(a, b predicate) predicate {
	return func(n normalized) bool { return a(n) && b(n) }
}

type rule struct {
	name  string
	match predicate
}

const goodMorningMultiplier = 0.45

var goodMorning = rule{"good morning", anyOf(contains("good morning"), words("gm"))}

// exclusionRules mark movements with no stable relation to a base lift.
var exclusionRules = []rule{
	{"isolation arms", contains("curl", "extension", "kickback", "bizeps", "trizeps")},
	{"rows", anyOf(words("row", "rows", "rudern"), contains("pullover"))},
	{"vertical pulls", contains("pulldown", "pull-down", "pull down", "pull-up", "pullup", "pull up",
		"chin-up", "chinup", "chin up", "latzug", "klimmzug", "muscle-up", "muscle up")},
	{"isolation legs", contains("leg press", "beinpresse", "calf", "hip thrust", "glute bridge", "nordic", "reverse hyper")},
	{"isolation upper", contains("fly", "raise", "shrug", "face pull", "arnold", "chest press")},
	{"core", contains("plank", "crunch", "sit-up", "situp", "sit up", "ab wheel", "rollout",
		"russian twist", "hollow", "pallof")},
	{"olympic", anyOf(
		both(contains("clean"), not(contains("deadlift"))),
		both(contains("snatch"), not(contains("deadlift", "snatch grip"))),
		contains("jerk", "thruster"),
	)},
	{"unilateral", contains("lunge", "ausfallschritt", "split squat", "bulgarian", "step-up", "step up",
		"pistol", "single leg", "single-leg", "one leg", "one-leg", "single arm", "single-arm",
		"one arm", "one-arm", "unilateral")},
	{"machine", anyOf(contains("machine", "maschine", "smith", "hack squat", "belt squat", "pendulum",
		"cable", "landmine"))},
	{"free weight implements", anyOf(contains("goblet", "dumbbell", "kurzhantel", "kettlebell"), words("db", "kb"))},
	{"bodyweight", anyOf(contains("bodyweight", "push-up", "pushup", "push up", "air squat", "jump",
		"sissy", "wall sit", "burpee"), words("bw", "dip", "dips"))},
	{"loaded carries", contains("farmer", "carry", "sled")},
}

type modifier struct {
	name       string
	match      predicate
	multiplier float64
}

type family struct {
	name      string
	lift      models.BaseLift
	match     predicate
	modifiers []modifier // Most specific first.
	fallback  *float64   // nil: unrecognized variants get no relation.
}

func ratio(v float64) *float64 { return &v }

var families = []family{
	{
		name:  "squat",
		lift:  models.LiftSquat,
		match: contains("squat", "kniebeuge"),
		modifiers: []modifier{
			{"safety bar", anyOf(contains("safety"), words("ssb")), 0.90},
			{"front", contains("front"), 0.85},
			{"overhead", contains("overhead"), 0.60},
			{"zercher", contains("zercher"), 0.75},
			{"cambered", contains("cambered"), 0.90},
			{"anderson", contains("anderson"), 0.90},
			{"box", contains("box"), 0.90},
			{"pause", contains("pause"), 0.85},
			{"pin", words("pin", "pins"), 0.85},
			{"tempo", contains("tempo"), 0.80},
			{"high bar", contains("high bar", "high-bar", "highbar"), 0.95},
			{"partial", contains("half", "quarter"), 1.10},
		},
		fallback: ratio(1.00),
	},
	{
		name:  "bench",
		lift:  models.LiftBench,
		match: anyOf(contains("bench", "bank", "floor press", "spoto", "larsen", "board press")),
		modifiers: []modifier{
			{"touch and go", anyOf(contains("touch and go", "touch-and-go", "touch & go"), words("tng")), 1.02},
			{"slingshot", contains("slingshot"), 1.10},
			{"board", contains("board"), 1.05},
			{"close grip", anyOf(contains("close grip", "close-grip", "enger griff"), words("cgbp")), 0.90},
			{"incline", contains("incline", "schräg"), 0.80},
			{"decline", contains("decline"), 1.05},
			{"floor", contains("floor"), 0.90},
			{"spoto", contains("spoto"), 0.90},
			{"larsen", contains("larsen"), 0.90},
			{"pin", words("pin", "pins"), 0.90},
			{"reverse grip", contains("reverse"), 0.90},
			{"long pause", contains("long pause"), 0.95},
			{"wide grip", contains("wide"), 0.95},
		},
		fallback: ratio(1.00),
	},
	{
		name:  "deadlift",
		lift:  models.LiftDeadlift,
		match: anyOf(contains("deadlift", "kreuzheben", "block pull", "rack pull"), words("rdl", "sldl")),
		modifiers: []modifier{
			{"deficit", contains("deficit"), 0.90},
			{"romanian", anyOf(contains("romanian", "rumänisch"), words("rdl")), 0.70},
			{"stiff leg", anyOf(contains("stiff", "gestreckt"), words("sldl")), 0.70},
			{"snatch grip", contains("snatch grip", "snatch-grip"), 0.80},
			{"trap bar", contains("trap bar", "hex bar", "trap-bar", "hex-bar"), 1.05},
			{"pause", contains("pause"), 0.85},
			{"block", contains("block"), 1.10},
			{"rack", contains("rack"), 1.15},
			{"sumo", contains("sumo"), 1.00},
		},
		fallback: ratio(1.00),
	},
	{
		// "press" alone is too generic to assume the base lift, so unknown
		// presses resolve to nothing.
		name:  "press",
		lift:  models.LiftOverhead,
		match: both(anyOf(contains("press", "drücken"), words("ohp")), not(contains("bench", "bank"))),
		modifiers: []modifier{
			{"push press", contains("push press", "push-press", "schwungdrücken"), 1.20},
			{"behind the neck", anyOf(contains("behind the neck", "nacken"), words("btn")), 0.85},
			{"z press", contains("z press", "z-press"), 0.80},
			{"seated", contains("seated", "sitzend"), 0.90},
			{"strict", anyOf(contains("overhead", "military", "strict", "standing", "shoulder", "schulter"), words("ohp")), 1.00},
		},
	},
}
