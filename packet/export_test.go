package packet

func (g Geometry) ColumnOf(strand, off int) int { return g.columnOf(strand, off) }

var StrandIDOf = (*Packet).strandID
