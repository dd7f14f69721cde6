package onerm

import "github.com/misterclayt0n/prescribe/internal/models"

var (
	wilksMale = [6]float64{
		-216.0475144,
		16.2606339,
		-0.002388645,
		-0.00113732,
		7.01863e-06,
		-1.291e-08,
	}
	wilksFemale = [6]float64{
		594.31747775582,
		-27.23842536447,
		0.82112226871,
		-0.00930733913,
		4.731582e-05,
		-9.054e-08,
	}
)

// Wilks returns the bodyweight-normalized score of a total. Female uses the
// female coefficients; every other value uses the male set.
func Wilks(gender models.Gender, bodyweight, total float64) float64 {
	if bodyweight <= 0 || total <= 0 {
		return 0
	}
	c := wilksMale
	if gender == models.GenderFemale {
		c = wilksFemale
	}

	x := bodyweight
	denom := c[0] + c[1]*x + c[2]*x*x + c[3]*x*x*x + c[4]*x*x*x*x + c[5]*x*x*x*x*x
	if denom <= 0 {
		return 0
	}
	return 500 * total / denom
}
