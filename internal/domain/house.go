package domain

// HouseCount is the number of houses in the wheel.
const HouseCount = 12

// HouseOf returns the 1-based house that usedSign occupies when rising is house 1.
// Houses follow the signs in zodiacal order and wrap after Pisces.
func HouseOf(usedSign, rising Sign) int {
	// +12 keeps the operand non-negative before the modulo.
	return 1 + (int(usedSign)-int(rising)+HouseCount)%HouseCount
}
