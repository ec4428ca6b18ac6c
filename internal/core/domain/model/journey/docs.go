// Package journey contains the Journey aggregate: an ordered sequence of legs
// that together form a single passenger errand, such as an outbound ride to an
// appointment and the return ride home.
//
// A Journey does not own its trips. Each leg references a trip by ID, and the
// journey's overall state is the aggregate of its trips' statuses; the journey
// itself carries no independent status machine.
//
// Legs may carry a transition directive describing the gap before the next
// leg. Today the only directive is wait-and-return: the crew stays on site for
// the stated duration and then serves the next leg's trip. The final leg of a
// journey never carries a directive, since there is nothing to transition to.
package journey
