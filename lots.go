package tradelens

// lot represents a single purchase of an instrument, used for FIFO cost basis
// calculations.
type lot struct {
	Date     Date
	Quantity Quantity
	Cost     Money // Total cost of the lot (quantity * price + commission)
}

type lots []lot

// fifoCostOfSelling calculates the cost of selling a quantity of units using FIFO.
func (l lots) fifoCostOfSelling(quantityToSell Quantity) Money {
	var costOfSoldUnits Money

	for _, currentLot := range l {
		if currentLot.Quantity.GreaterThan(quantityToSell) {
			// Partial sale from this lot
			costOfSoldPortion := currentLot.Cost.Mul(quantityToSell).Div(currentLot.Quantity)
			costOfSoldUnits = costOfSoldUnits.Add(costOfSoldPortion)
			return costOfSoldUnits
		}
		// Full sale of this lot
		costOfSoldUnits = costOfSoldUnits.Add(currentLot.Cost)
		quantityToSell = quantityToSell.Sub(currentLot.Quantity)
	}
	return costOfSoldUnits
}

// sell reduces the available lots by a given quantity using the FIFO method.
func (l lots) sell(quantityToSell Quantity) lots {
	var remainingLots lots

	for _, currentLot := range l {
		if quantityToSell.IsZero() {
			remainingLots = append(remainingLots, currentLot)
			continue
		}

		if currentLot.Quantity.GreaterThan(quantityToSell) {
			// Partial sale from this lot
			costOfSoldPortion := currentLot.Cost.Mul(quantityToSell).Div(currentLot.Quantity)
			remainingLots = append(remainingLots, lot{
				Date:     currentLot.Date,
				Quantity: currentLot.Quantity.Sub(quantityToSell),
				Cost:     currentLot.Cost.Sub(costOfSoldPortion),
			})
			quantityToSell = Q(0)
		} else {
			// Full sale of this lot
			quantityToSell = quantityToSell.Sub(currentLot.Quantity)
		}
	}
	return remainingLots
}
