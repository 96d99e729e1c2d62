// Package services contains the business rules sitting between the HTTP
// controllers and the repositories.
//
// Services defined in this package:
//   - AuthService: registration and login
//   - UserService: approval workflow, role changes, user administration
//   - DepartmentService: department tree CRUD with delete guards
//   - ProjectService: project CRUD, assignment and status authorization
package services
