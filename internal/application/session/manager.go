package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tu-usuario/granja-pro/internal/application/business"
	"github.com/tu-usuario/granja-pro/internal/domain"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/permission"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
	"github.com/tu-usuario/granja-pro/pkg/logger"
)

// backfillTimeout límite para la corrección en segundo plano de placeholders.
const backfillTimeout = 15 * time.Second

// Manager coordina la resolución de sesión y es el único dueño del estado mutable:
// perfil, bindings, negocios, negocio activo, rol y permisos efectivos por usuario.
// Los consumidores reciben Snapshots; nada muta fuera de este tipo.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*state

	resolver *Resolver
	registry *business.Registry
	prefs    repository.PreferenceRepository
	log      *logger.Logger
}

// NewManager construye el coordinador de sesiones.
func NewManager(resolver *Resolver, registry *business.Registry, prefs repository.PreferenceRepository, log *logger.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*state),
		resolver: resolver,
		registry: registry,
		prefs:    prefs,
		log:      log,
	}
}

// ensureLocked devuelve el estado del usuario, creándolo si no existe. Requiere mu.
func (m *Manager) ensureLocked(userID string) *state {
	st, ok := m.sessions[userID]
	if !ok {
		st = &state{}
		m.sessions[userID] = st
	}
	return st
}

// SignIn ejecuta la secuencia de arranque de sesión: resolver rol y perfil, cargar
// negocios, seleccionar el activo y fijar rol/permisos efectivos.
//
// Dependencia secuencial estricta: la resolución de rol debe terminar antes de cargar
// negocios. Reentradas mientras hay una resolución en vuelo (re-render, parpadeo del
// estado de auth) se suprimen y devuelven el estado actual; un load fallido tampoco
// se reintenta solo, el llamador debe pedir Refresh.
func (m *Manager) SignIn(ctx context.Context, user AuthUser) (Snapshot, error) {
	m.mu.Lock()
	st := m.ensureLocked(user.ID)
	if st.resolving || st.loaded {
		snap, err := st.snapshot(), st.err
		m.mu.Unlock()
		return snap, err
	}
	st.resolving = true
	epoch := st.epoch
	m.mu.Unlock()

	profile, bindings, err := m.resolver.Resolve(ctx, user)
	if err != nil {
		return m.commitFailure(user.ID, epoch, err)
	}

	businesses, backfillIDs, err := m.registry.LoadForRole(ctx, bindings, profile.Role)
	if err != nil {
		return m.commitFailure(user.ID, epoch, err)
	}

	storedID, err := m.prefs.GetActiveBusiness(ctx, user.ID)
	if err != nil {
		// Preferencia ilegible no es fatal: se selecciona el primero de la lista.
		m.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo leer la preferencia de negocio activo")
		storedID = ""
	}

	active := business.SelectActive(businesses, profile.Role, storedID)

	// Rol y permisos son por-negocio: se resuelven del binding del negocio activo,
	// ya cargado en memoria; el rol primario del perfil es solo bookkeeping.
	role, perms := effectiveFromBindings(bindings, active)

	if profile.Role == entity.RoleOwner && active != nil {
		if err := m.prefs.SetActiveBusiness(ctx, user.ID, active.ID); err != nil {
			m.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo persistir la preferencia de negocio activo")
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	st = m.ensureLocked(user.ID)
	if st.epoch != epoch {
		// Sign-out durante el vuelo: descartar la respuesta, no aplicarla.
		m.log.Debug().Str("user_id", user.ID).Msg("resolución de sesión descartada por sign-out")
		return Snapshot{}, nil
	}
	st.profile = profile
	st.bindings = bindings
	st.businesses = businesses
	st.active = active
	st.role = role
	st.permissions = perms
	st.loaded = true
	st.resolving = false
	st.err = nil

	if len(backfillIDs) > 0 {
		go m.backfillNames(user.ID, epoch, backfillIDs)
	}

	return st.snapshot(), nil
}

// commitFailure marca la sesión como Failed (loaded=true, sin reintento automático)
// salvo que un sign-out haya invalidado el intento.
func (m *Manager) commitFailure(userID string, epoch uint64, cause error) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.ensureLocked(userID)
	if st.epoch != epoch {
		return Snapshot{}, nil
	}
	st.resolving = false
	st.loaded = true
	st.err = cause
	// El detalle queda aquí; a los clientes solo les llega un mensaje fijo.
	m.log.Error().Err(cause).Str("user_id", userID).Msg("resolución de sesión fallida")
	return st.snapshot(), cause
}

// effectiveFromBindings busca el binding del negocio activo entre los ya cargados.
func effectiveFromBindings(bindings []*entity.BusinessRole, active *entity.Business) (string, map[permission.Feature]bool) {
	if active == nil {
		return "", nil
	}
	for _, b := range bindings {
		if b.BusinessID == active.ID {
			if b.Role == entity.RoleCaretaker {
				return b.Role, permission.Resolve(b.Permissions)
			}
			return b.Role, nil
		}
	}
	return "", nil
}

// backfillNames intenta reemplazar los campos de los placeholders con los datos
// reales. Mejor esfuerzo: el fallo se registra y se traga; aplicar tarde es seguro
// porque el merge es por identificador sobre la lista vigente (nunca un overwrite
// ciego), y un epoch distinto descarta el resultado completo.
func (m *Manager) backfillNames(userID string, epoch uint64, ids []string) {
	ctx, cancel := context.WithTimeout(context.Background(), backfillTimeout)
	defer cancel()

	infos, err := m.registry.FetchNames(ctx, ids)
	if err != nil {
		m.log.Warn().Err(err).Str("user_id", userID).Msg("backfill de nombres de negocio falló")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.sessions[userID]
	if !ok || st.epoch != epoch {
		return
	}
	for _, info := range infos {
		for _, b := range st.businesses {
			if b.ID == info.ID {
				b.Name = info.Name
				b.Description = info.Description
				b.Placeholder = false
			}
		}
	}
}

// SwitchActive cambia el negocio activo y re-consulta rol/permisos para ese negocio.
// El lookup puede fallar sin tumbar la sesión: se registra y el rol queda desconocido.
func (m *Manager) SwitchActive(ctx context.Context, userID, businessID string) (Snapshot, error) {
	m.mu.Lock()
	st := m.ensureLocked(userID)
	if !st.loaded {
		m.mu.Unlock()
		return Snapshot{}, fmt.Errorf("sesión no cargada: %w", domain.ErrConflict)
	}
	var target *entity.Business
	for _, b := range st.businesses {
		if b.ID == businessID {
			target = b
			break
		}
	}
	if target == nil {
		snap := st.snapshot()
		m.mu.Unlock()
		return snap, domain.ErrNotFound
	}
	epoch := st.epoch
	primaryRole := ""
	if st.profile != nil {
		primaryRole = st.profile.Role
	}
	m.mu.Unlock()

	role, perms, err := m.registry.EffectiveRole(ctx, userID, businessID)
	if err != nil {
		m.log.Warn().Err(err).
			Str("user_id", userID).
			Str("business_id", businessID).
			Msg("lookup de rol tras cambio de negocio falló, rol queda desconocido")
		role, perms = "", nil
	}

	if primaryRole == entity.RoleOwner {
		if perr := m.prefs.SetActiveBusiness(ctx, userID, businessID); perr != nil {
			m.log.Warn().Err(perr).Str("user_id", userID).Msg("no se pudo persistir la preferencia de negocio activo")
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	st = m.ensureLocked(userID)
	if st.epoch != epoch {
		return Snapshot{}, nil
	}
	st.active = target
	st.role = role
	st.permissions = perms
	return st.snapshot(), nil
}

// SignOut limpia incondicionalmente todo el estado de sesión del usuario e invalida
// (vía epoch) cualquier respuesta en vuelo. La preferencia durable NO se borra:
// se restaura en el próximo sign-in si sigue siendo válida.
func (m *Manager) SignOut(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.sessions[userID]
	if !ok {
		return
	}
	st.epoch++
	st.profile = nil
	st.bindings = nil
	st.businesses = nil
	st.active = nil
	st.role = ""
	st.permissions = nil
	st.loaded = false
	st.resolving = false
	st.err = nil
}

// Refresh invalida el flag de carga y vuelve a ejecutar la secuencia completa.
// Es el único camino de reintento tras un load fallido.
func (m *Manager) Refresh(ctx context.Context, user AuthUser) (Snapshot, error) {
	m.mu.Lock()
	st := m.ensureLocked(user.ID)
	st.epoch++
	st.loaded = false
	st.resolving = false
	st.err = nil
	m.mu.Unlock()
	return m.SignIn(ctx, user)
}

// Snapshot devuelve una copia del estado de sesión actual del usuario.
func (m *Manager) Snapshot(userID string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.sessions[userID]
	if !ok {
		return Snapshot{}, false
	}
	return st.snapshot(), true
}

// Gate devuelve rol efectivo, permisos y negocio activo para decisiones de acceso.
// ok es false si la sesión no está cargada o no hay negocio activo.
func (m *Manager) Gate(userID string) (role string, perms map[permission.Feature]bool, businessID string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, found := m.sessions[userID]
	if !found || !st.loaded || st.active == nil {
		return "", nil, "", false
	}
	snap := st.snapshot()
	return snap.Role, snap.Permissions, st.active.ID, true
}

// CreateBusiness crea el negocio con binding owner y actualiza el estado en memoria
// sin recarga completa: lo añade a la lista y lo vuelve activo. Requiere sesión
// resuelta: añadir a un estado sin cargar produciría una instantánea incoherente
// (resolviendo y con negocio activo a la vez).
func (m *Manager) CreateBusiness(ctx context.Context, userID string, in business.CreateInput) (Snapshot, error) {
	m.mu.Lock()
	st := m.ensureLocked(userID)
	if !st.loaded {
		m.mu.Unlock()
		return Snapshot{}, fmt.Errorf("sesión no cargada: %w", domain.ErrConflict)
	}
	epoch := st.epoch
	m.mu.Unlock()

	b, binding, err := m.registry.Create(ctx, userID, in)
	if err != nil {
		return Snapshot{}, err
	}

	if perr := m.prefs.SetActiveBusiness(ctx, userID, b.ID); perr != nil {
		m.log.Warn().Err(perr).Str("user_id", userID).Msg("no se pudo persistir la preferencia de negocio activo")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	st = m.ensureLocked(userID)
	if st.epoch != epoch {
		// Sign-out durante la creación: el negocio ya existe en el almacén y se
		// cargará en el próximo sign-in; no se aplica sobre el estado limpio.
		return Snapshot{}, nil
	}
	st.businesses = append(st.businesses, b)
	st.bindings = append(st.bindings, binding)
	st.active = b
	st.role = entity.RoleOwner
	st.permissions = nil
	if st.profile != nil {
		// Con un binding owner el rol primario derivado pasa a owner; el registro
		// almacenado se corregirá en la próxima resolución.
		st.profile.Role = entity.RoleOwner
	}
	return st.snapshot(), nil
}

// DeleteBusiness borra el negocio (solo el creador) y lo retira del estado en
// memoria; si era el activo, limpia selección y preferencia durable.
func (m *Manager) DeleteBusiness(ctx context.Context, userID, businessID string) error {
	if err := m.registry.Delete(ctx, userID, businessID); err != nil {
		return err
	}

	m.mu.Lock()
	st := m.ensureLocked(userID)
	wasActive := st.active != nil && st.active.ID == businessID

	kept := st.businesses[:0]
	for _, b := range st.businesses {
		if b.ID != businessID {
			kept = append(kept, b)
		}
	}
	st.businesses = kept

	keptBindings := st.bindings[:0]
	for _, bd := range st.bindings {
		if bd.BusinessID != businessID {
			keptBindings = append(keptBindings, bd)
		}
	}
	st.bindings = keptBindings

	if wasActive {
		st.active = nil
		st.role = ""
		st.permissions = nil
	}
	m.mu.Unlock()

	if wasActive {
		if err := m.prefs.ClearActiveBusiness(ctx, userID); err != nil {
			m.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo limpiar la preferencia de negocio activo")
		}
	}
	return nil
}

// UpdateBusinessSettings aplica el merge parcial y refresca el registro en memoria
// de forma optimista, sin recarga completa. El puntero de la lista se conserva para
// que el negocio activo vea los campos nuevos.
func (m *Manager) UpdateBusinessSettings(ctx context.Context, userID, businessID string, update entity.BusinessUpdate) (*entity.Business, error) {
	updated, err := m.registry.UpdateSettings(ctx, userID, businessID, update)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.ensureLocked(userID)
	for _, b := range st.businesses {
		if b.ID == businessID {
			b.Name = updated.Name
			b.Description = updated.Description
			b.Address = updated.Address
			b.PaymentModelType = updated.PaymentModelType
			b.PaymentModelAmount = updated.PaymentModelAmount
			b.UpdatedAt = updated.UpdatedAt
		}
	}
	return updated, nil
}
