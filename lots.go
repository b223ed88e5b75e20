package fincalc

// lot is a quantity of an instrument acquired by one buy transaction at a
// specific per-unit cost, tracked until fully consumed by later sells.
type lot struct {
	buy       *TransactionRecord // owning buy transaction
	remaining Quantity
	unitCost  Money // (price*quantity + commission) / quantity
}

// lotBook is a FIFO arena of the open lots of one (platform, instrument)
// group. Lots are stored in acquisition order in a slice with a front
// cursor; consuming a lot advances the cursor instead of reallocating,
// and the buy that owns each remaining quantity stays inspectable.
//
// A lotBook is local to one profit-engine run and is never shared.
type lotBook struct {
	lots  []lot
	front int
}

// push appends a freshly bought lot.
func (b *lotBook) push(buy *TransactionRecord, quantity Quantity, unitCost Money) {
	b.lots = append(b.lots, lot{buy: buy, remaining: quantity, unitCost: unitCost})
}

// consume removes up to quantity units from the oldest lots first. It
// returns the total cost of the matched units and the quantity actually
// matched, which is less than requested when the book runs dry (an
// oversell).
func (b *lotBook) consume(quantity Quantity) (cost Money, matched Quantity) {
	for b.front < len(b.lots) && quantity.IsPositive() {
		head := &b.lots[b.front]
		take := head.remaining.Min(quantity)
		cost = cost.Add(head.unitCost.Mul(take))
		matched = matched.Add(take)
		quantity = quantity.Sub(take)
		head.remaining = head.remaining.Sub(take)
		if !head.remaining.IsPositive() {
			b.front++
		}
	}
	return cost, matched
}

// open calls fn for every lot that still has remaining quantity,
// in acquisition order.
func (b *lotBook) open(fn func(l *lot)) {
	for i := b.front; i < len(b.lots); i++ {
		if b.lots[i].remaining.IsPositive() {
			fn(&b.lots[i])
		}
	}
}

// openQuantity returns the total remaining quantity across open lots.
func (b *lotBook) openQuantity() Quantity {
	var total Quantity
	b.open(func(l *lot) { total = total.Add(l.remaining) })
	return total
}

// openCost returns the total remaining cost basis across open lots.
func (b *lotBook) openCost() Money {
	var total Money
	b.open(func(l *lot) { total = total.Add(l.unitCost.Mul(l.remaining)) })
	return total
}
