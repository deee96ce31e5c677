// Package models defines the core domain models for the trip planner.
//
// # Persisted Models
//
//   - Trip: A trip with its access-code protection fields
//   - Place: A point of interest belonging to a trip
//   - Participant: A person on a trip, possibly part of a family
//   - Family: A named group of participants with a designated head
//   - Expense: A shared (or personal) expense paid by one participant
//   - DayPlan / DayPlanPlace: Itinerary days and their ordered place entries
//
// # Derived Models
//
// Settlement results are computed on demand and never persisted:
//   - Balance: Per-participant paid/owed/net amounts
//   - SettlingBalance: Balances rolled up to a settling entity
//   - SettlementTransaction: A single debtor-to-creditor transfer
//   - SettlementResult: The full response of a settlement computation
//
// # Design Principles
//
//  1. **Flat records**: Relationships are ID strings, never embedded
//     pointers, so there are no cyclic references between participants,
//     families, and expenses.
//  2. **Immutable expenses**: Expenses are created and deleted, never
//     edited; settlement always recomputes from the current expense set.
//  3. **Head invariant**: A participant with no family is independent and
//     has IsHead=true; a family's head has IsHead=true and its FamilyID set
//     to that family.
package models
