package state

import (
	"sync"
	"time"
)

// Manager хранит сессии мастера по telegramID
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	now      func() time.Time
}

// NewManager создаёт новый менеджер сессий
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
		now:      time.Now,
	}
}

// GetOrCreate возвращает сессию пользователя, создавая её при необходимости
func (m *Manager) GetOrCreate(telegramID int64) *Session {
	now := m.now()

	m.mu.RLock()
	sess, ok := m.sessions[telegramID]
	m.mu.RUnlock()
	if ok {
		sess.Touch(now)
		return sess
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[telegramID]; ok {
		sess.Touch(now)
		return sess
	}
	sess = NewSession(telegramID, now)
	m.sessions[telegramID] = sess
	return sess
}

// Get возвращает сессию без создания
func (m *Manager) Get(telegramID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[telegramID]
	return sess, ok
}

// Clear удаляет сессию и отменяет её оплату
func (m *Manager) Clear(telegramID int64) bool {
	m.mu.Lock()
	sess, ok := m.sessions[telegramID]
	delete(m.sessions, telegramID)
	m.mu.Unlock()

	if !ok {
		return false
	}

	sess.Lock()
	sess.close()
	sess.Unlock()
	return true
}

// EvictIdle удаляет сессии без активности с момента cutoff
func (m *Manager) EvictIdle(cutoff time.Time) int {
	var evicted []*Session

	m.mu.Lock()
	for id, sess := range m.sessions {
		if sess.LastSeen().Before(cutoff) {
			evicted = append(evicted, sess)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, sess := range evicted {
		sess.Lock()
		sess.close()
		sess.Unlock()
	}
	return len(evicted)
}

// Len количество активных сессий
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
