package handlers

// @title Freshsilver API
// @version 1.0
// @description Shared chat wall and event RSVP list for the freshsilver site

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /

// @tag.name messages
// @tag.description Chat wall operations

// @tag.name rsvp
// @tag.description Event attendance operations
