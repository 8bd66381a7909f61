package party

// csp is the constraint model derived from an instance and one candidate
// host set: one variable per (guest, period), domains over dense host
// positions. Host position h maps to the boat at hostPos[h]; positions
// ascend by boat identifier, so ascending h is ascending host ID. A guest
// is never a member of the host set, so every variable starts with the
// full host range (a boat never hosts itself by construction).
//
// Variables are numbered vid = guest*periods + period, which makes the
// natural vid order the (guest ID, period) tie-break order.
type csp struct {
	inst    *Instance
	periods int

	hostPos  []int // host position -> boat position
	guestPos []int // guest position -> boat position

	hostCrew  []int // by host position
	hostCap   []int // by host position
	hostClass []int // by host position: instance class index
	guestCrew []int // by guest position

	numVars int
}

func newCSP(inst *Instance, hostPos []int) *csp {
	m := &csp{
		inst:    inst,
		periods: inst.periods,
	}
	isHost := make([]bool, len(inst.boats))
	for _, pos := range hostPos {
		isHost[pos] = true
	}
	m.hostPos = append([]int(nil), hostPos...)
	m.hostCrew = make([]int, len(hostPos))
	m.hostCap = make([]int, len(hostPos))
	m.hostClass = make([]int, len(hostPos))
	for h, pos := range hostPos {
		m.hostCrew[h] = inst.boats[pos].Crew
		m.hostCap[h] = inst.boats[pos].Capacity
		m.hostClass[h] = inst.classOf[pos]
	}
	for pos := range inst.boats {
		if !isHost[pos] {
			m.guestPos = append(m.guestPos, pos)
			m.guestCrew = append(m.guestCrew, inst.boats[pos].Crew)
		}
	}
	m.numVars = len(m.guestPos) * m.periods
	return m
}

func (m *csp) vid(g, p int) int   { return g*m.periods + p }
func (m *csp) guestOf(v int) int  { return v / m.periods }
func (m *csp) periodOf(v int) int { return v % m.periods }

// pairIdx flattens an unordered guest pair into an index for the meeting
// book.
func (m *csp) pairIdx(g1, g2 int) int {
	if g1 > g2 {
		g1, g2 = g2, g1
	}
	return g1*len(m.guestPos) + g2
}
