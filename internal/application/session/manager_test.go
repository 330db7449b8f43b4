package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/granja-pro/internal/application/business"
	"github.com/tu-usuario/granja-pro/internal/application/session"
	"github.com/tu-usuario/granja-pro/internal/domain"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/permission"
)

type managerFixture struct {
	profiles   *fakeProfiles
	roles      *fakeRoles
	businesses *fakeBusinesses
	prefs      *fakePrefs
	mgr        *session.Manager
}

// newManagerFixture arma un Manager con fakes. Los puertos del borrado en cascada no
// se ejercitan aquí (ver registry_test en el paquete business).
func newManagerFixture() *managerFixture {
	log := testLogger()
	profiles := newFakeProfiles()
	roles := newFakeRoles()
	businesses := newFakeBusinesses()
	prefs := newFakePrefs()
	registry := business.NewRegistry(businesses, roles, nil, nil, nil, nil, nil, nil, log)
	resolver := session.NewResolver(profiles, roles, log)
	return &managerFixture{
		profiles:   profiles,
		roles:      roles,
		businesses: businesses,
		prefs:      prefs,
		mgr:        session.NewManager(resolver, registry, prefs, log),
	}
}

func newBusiness(id, name, createdBy string) *entity.Business {
	return &entity.Business{
		ID:                 id,
		Name:               name,
		Address:            "Vereda La Esperanza",
		PaymentModelType:   entity.PaymentModelPercentage,
		PaymentModelAmount: decimal.NewFromInt(15),
		CreatedBy:          createdBy,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
}

// Owner con preferencia guardada que sigue vigente: se restaura como activo.
func TestSignIn_OwnerRestauraPreferencia(t *testing.T) {
	f := newManagerFixture()
	f.businesses.add(newBusiness("b1", "Finca Uno", "u1"))
	f.businesses.add(newBusiness("b2", "Finca Dos", "u1"))
	f.roles.byUser["u1"] = []*entity.BusinessRole{
		binding("u1", "b1", entity.RoleOwner),
		binding("u1", "b2", entity.RoleOwner),
	}
	f.prefs.m["u1"] = "b2"

	snap, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})

	require.NoError(t, err)
	require.NotNil(t, snap.Active)
	assert.Equal(t, "b2", snap.Active.ID)
	assert.Equal(t, entity.RoleOwner, snap.Role)
	assert.Nil(t, snap.Permissions, "owner no usa mapa de permisos")
	assert.Equal(t, "b2", f.prefs.m["u1"], "la preferencia se re-persiste")
}

// Preferencia obsoleta (negocio ya no accesible): cae al primero de la lista.
func TestSignIn_PreferenciaObsoletaCaeAlPrimero(t *testing.T) {
	f := newManagerFixture()
	f.businesses.add(newBusiness("b1", "Finca Uno", "u1"))
	f.roles.byUser["u1"] = []*entity.BusinessRole{binding("u1", "b1", entity.RoleOwner)}
	f.prefs.m["u1"] = "b-borrado"

	snap, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})

	require.NoError(t, err)
	require.NotNil(t, snap.Active)
	assert.Equal(t, "b1", snap.Active.ID)
}

// Owner con cero negocios NO es error: señala onboarding (sin activo, sin rol).
func TestSignIn_OwnerSinNegociosEsOnboarding(t *testing.T) {
	f := newManagerFixture()

	snap, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})

	require.NoError(t, err)
	assert.True(t, snap.Loaded)
	assert.Empty(t, snap.Businesses)
	assert.Nil(t, snap.Active)
	assert.Equal(t, entity.RoleOwner, snap.Profile.Role)
}

// Caretaker con cero bindings: ErrNoAccess, jamás un dashboard.
func TestSignIn_CaretakerSinBindingsEsNoAccess(t *testing.T) {
	f := newManagerFixture()
	f.profiles.byUser["u1"] = &entity.Profile{ID: "p1", UserID: "u1", Role: entity.RoleCaretaker}

	_, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoAccess))
}

// Reentradas (re-render, parpadeo de auth) se suprimen: una sola resolución.
func TestSignIn_ReentradaSuprimida(t *testing.T) {
	f := newManagerFixture()
	f.businesses.add(newBusiness("b1", "Finca Uno", "u1"))
	f.roles.byUser["u1"] = []*entity.BusinessRole{binding("u1", "b1", entity.RoleOwner)}

	_, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})
	require.NoError(t, err)
	_, err = f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, 1, f.roles.listCalls, "la segunda llamada no debe re-resolver")
}

// Un load fallido queda en Failed y NO se reintenta solo; Refresh es el único camino.
func TestSignIn_FalloNoReintentaSolo(t *testing.T) {
	f := newManagerFixture()
	f.roles.listErr = errors.New("db caída")

	_, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})
	require.Error(t, err)

	_, err2 := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})
	require.Error(t, err2, "el estado Failed se devuelve tal cual")
	assert.Equal(t, 1, f.roles.listCalls, "sin reintento automático")

	// Reparar la DB y refrescar explícitamente.
	f.roles.listErr = nil
	f.businesses.add(newBusiness("b1", "Finca Uno", "u1"))
	f.roles.byUser["u1"] = []*entity.BusinessRole{binding("u1", "b1", entity.RoleOwner)}

	snap, err := f.mgr.Refresh(context.Background(), session.AuthUser{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "b1", snap.Active.ID)
}

// Caretaker cuyas filas aún están ocultas: placeholders con nombre parcial
// determinista y backfill posterior que corrige sin perturbar la selección activa.
func TestSignIn_CaretakerPlaceholdersYBackfill(t *testing.T) {
	f := newManagerFixture()
	realName := "Finca La Aurora"
	f.businesses.add(newBusiness("11112222-3333-4444-5555-666677778888", realName, "otro"))
	f.businesses.hideFromList = true // la consulta principal vuelve vacía
	f.roles.byUser["u1"] = []*entity.BusinessRole{
		binding("u1", "11112222-3333-4444-5555-666677778888", entity.RoleCaretaker),
	}

	snap, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})

	require.NoError(t, err)
	require.Len(t, snap.Businesses, 1)
	assert.True(t, snap.Businesses[0].Placeholder)
	assert.Equal(t, "Negocio 11112222", snap.Businesses[0].Name, "nombre parcial derivado del ID")
	require.NotNil(t, snap.Active)
	activeID := snap.Active.ID

	// El backfill corre en segundo plano y reemplaza los campos por identificador.
	require.Eventually(t, func() bool {
		s, ok := f.mgr.Snapshot("u1")
		return ok && len(s.Businesses) == 1 && s.Businesses[0].Name == realName
	}, 2*time.Second, 10*time.Millisecond, "el backfill debe corregir el nombre")

	s, _ := f.mgr.Snapshot("u1")
	assert.False(t, s.Businesses[0].Placeholder)
	assert.Equal(t, activeID, s.Active.ID, "la selección activa no se perturba")
}

// Un backfill fallido se traga: el acceso con nombre desconocido sigue siendo válido.
func TestSignIn_BackfillFallidoSeTraga(t *testing.T) {
	f := newManagerFixture()
	f.businesses.add(newBusiness("b1", "Finca Real", "otro"))
	f.businesses.hideFromList = true
	f.businesses.fetchErr = errors.New("aún sin acceso")
	f.roles.byUser["u1"] = []*entity.BusinessRole{binding("u1", "b1", entity.RoleCaretaker)}

	snap, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleCaretaker, snap.Role)

	// Dar tiempo al goroutine; el estado debe seguir íntegro con el placeholder.
	require.Eventually(t, func() bool {
		f.businesses.mu.Lock()
		defer f.businesses.mu.Unlock()
		return f.businesses.fetchCalls >= 1
	}, 2*time.Second, 10*time.Millisecond)

	s, ok := f.mgr.Snapshot("u1")
	require.True(t, ok)
	assert.True(t, s.Loaded)
	assert.True(t, s.Businesses[0].Placeholder)
}

// Las instantáneas son copias por valor: la que un consumidor recibió antes del
// backfill no cambia cuando el backfill corrige los structs internos del manager.
func TestSnapshot_AisladaDelBackfill(t *testing.T) {
	f := newManagerFixture()
	realName := "Finca La Aurora"
	f.businesses.add(newBusiness("11112222-3333-4444-5555-666677778888", realName, "otro"))
	f.businesses.hideFromList = true
	f.roles.byUser["u1"] = []*entity.BusinessRole{
		binding("u1", "11112222-3333-4444-5555-666677778888", entity.RoleCaretaker),
	}

	antes, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})
	require.NoError(t, err)
	require.Len(t, antes.Businesses, 1)
	require.True(t, antes.Businesses[0].Placeholder)

	// Esperar a que el backfill aplique sobre el estado interno.
	require.Eventually(t, func() bool {
		s, ok := f.mgr.Snapshot("u1")
		return ok && s.Businesses[0].Name == realName
	}, 2*time.Second, 10*time.Millisecond)

	// La instantánea previa sigue intacta: quien la serialice fuera del lock
	// no comparte memoria con los structs que el backfill mutó.
	assert.Equal(t, "Negocio 11112222", antes.Businesses[0].Name)
	assert.True(t, antes.Businesses[0].Placeholder)
	require.NotNil(t, antes.Active)
	assert.Equal(t, "Negocio 11112222", antes.Active.Name)
}

// Mutar una instantánea jamás toca el estado del manager.
func TestSnapshot_MutacionNoContamina(t *testing.T) {
	f := newManagerFixture()
	f.businesses.add(newBusiness("b1", "Finca Uno", "u1"))
	f.roles.byUser["u1"] = []*entity.BusinessRole{binding("u1", "b1", entity.RoleOwner)}

	snap, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})
	require.NoError(t, err)

	snap.Businesses[0].Name = "Garabateado"
	snap.Active.Name = "Garabateado"
	snap.Profile.Role = entity.RoleCaretaker

	s, ok := f.mgr.Snapshot("u1")
	require.True(t, ok)
	assert.Equal(t, "Finca Uno", s.Businesses[0].Name)
	assert.Equal(t, "Finca Uno", s.Active.Name)
	assert.Equal(t, entity.RoleOwner, s.Profile.Role)
}

// El rol es por-negocio: cambiar de negocio re-consulta rol y permisos de ese tenant.
func TestSwitchActive_RolPorNegocio(t *testing.T) {
	f := newManagerFixture()
	f.businesses.add(newBusiness("b1", "Finca Uno", "u1"))
	f.businesses.add(newBusiness("b2", "Finca Dos", "otro"))
	caretakerBinding := binding("u1", "b2", entity.RoleCaretaker)
	caretakerBinding.Permissions = map[string]bool{"finances": true}
	f.roles.byUser["u1"] = []*entity.BusinessRole{
		binding("u1", "b1", entity.RoleOwner),
		caretakerBinding,
	}

	_, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})
	require.NoError(t, err)

	snap, err := f.mgr.SwitchActive(context.Background(), "u1", "b2")
	require.NoError(t, err)
	assert.Equal(t, "b2", snap.Active.ID)
	assert.Equal(t, entity.RoleCaretaker, snap.Role)
	assert.True(t, snap.Permissions[permission.FeatureFinances], "permiso explícito concedido")
	assert.False(t, snap.Permissions[permission.FeatureReports], "default de la política")
	assert.Equal(t, "b2", f.prefs.m["u1"], "preferencia persistida para owner primario")
}

// El lookup del cambio puede fallar sin tumbar la sesión: rol queda desconocido.
func TestSwitchActive_LookupFallidoTolerado(t *testing.T) {
	f := newManagerFixture()
	f.businesses.add(newBusiness("b1", "Finca Uno", "u1"))
	f.businesses.add(newBusiness("b2", "Finca Dos", "u1"))
	f.roles.byUser["u1"] = []*entity.BusinessRole{
		binding("u1", "b1", entity.RoleOwner),
		binding("u1", "b2", entity.RoleOwner),
	}

	_, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})
	require.NoError(t, err)

	f.roles.lookupErr = errors.New("timeout")
	snap, err := f.mgr.SwitchActive(context.Background(), "u1", "b2")

	require.NoError(t, err, "el fallo del lookup no debe propagarse")
	assert.Equal(t, "b2", snap.Active.ID)
	assert.Equal(t, "", snap.Role, "rol desconocido, nunca crash")
}

// Cambiar a un negocio fuera de la lista es ErrNotFound.
func TestSwitchActive_NegocioDesconocido(t *testing.T) {
	f := newManagerFixture()
	f.businesses.add(newBusiness("b1", "Finca Uno", "u1"))
	f.roles.byUser["u1"] = []*entity.BusinessRole{binding("u1", "b1", entity.RoleOwner)}

	_, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})
	require.NoError(t, err)

	_, err = f.mgr.SwitchActive(context.Background(), "u1", "b-ajeno")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// Sign-out limpia todo el estado y el siguiente sign-in no reutiliza nada en memoria.
func TestSignOut_LimpiaTodoYNoReusa(t *testing.T) {
	f := newManagerFixture()
	f.businesses.add(newBusiness("b1", "Finca Uno", "u1"))
	f.roles.byUser["u1"] = []*entity.BusinessRole{binding("u1", "b1", entity.RoleOwner)}

	_, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})
	require.NoError(t, err)

	f.mgr.SignOut("u1")

	snap, ok := f.mgr.Snapshot("u1")
	require.True(t, ok)
	assert.False(t, snap.Loaded)
	assert.Nil(t, snap.Active)
	assert.Equal(t, "", snap.Role)
	assert.Nil(t, snap.Permissions)
	assert.Empty(t, snap.Businesses)

	// El siguiente sign-in re-resuelve desde cero.
	_, err = f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 2, f.roles.listCalls)

	// La preferencia durable sobrevive al sign-out y se restaura.
	assert.Equal(t, "b1", f.prefs.m["u1"])
}

// Crear un negocio lo añade en memoria y lo vuelve activo sin recarga completa.
func TestCreateBusiness_ActualizaEstadoSinRecarga(t *testing.T) {
	f := newManagerFixture()

	_, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})
	require.NoError(t, err)

	desc := "Cría y levante"
	snap, err := f.mgr.CreateBusiness(context.Background(), "u1", business.CreateInput{
		Name:               "Finca Nueva",
		Description:        &desc,
		Address:            "Km 4 vía al mar",
		PaymentModelType:   entity.PaymentModelMonthly,
		PaymentModelAmount: decimal.NewFromInt(2000),
	})

	require.NoError(t, err)
	require.NotNil(t, snap.Active)
	assert.Equal(t, "Finca Nueva", snap.Active.Name)
	assert.Equal(t, entity.RoleOwner, snap.Role)
	assert.Len(t, snap.Businesses, 1)
	assert.Equal(t, snap.Active.ID, f.prefs.m["u1"], "preferencia escrita en la creación")
	assert.Equal(t, 1, f.roles.listCalls, "sin recarga completa")
}

// Crear sin sesión resuelta es conflicto: nada llega al almacén y el cliente debe
// completar primero el arranque de sesión.
func TestCreateBusiness_RequiereSesionResuelta(t *testing.T) {
	f := newManagerFixture()

	_, err := f.mgr.CreateBusiness(context.Background(), "u1", business.CreateInput{
		Name:               "Finca Prematura",
		PaymentModelType:   entity.PaymentModelPercentage,
		PaymentModelAmount: decimal.NewFromInt(10),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Empty(t, f.businesses.order, "el almacén no debe recibir el insert")
	assert.Empty(t, f.prefs.m, "sin preferencia escrita")
}

// Round-trip del merge: actualizar solo el nombre conserva dirección y modelo de pago.
func TestUpdateBusinessSettings_MergeParcial(t *testing.T) {
	f := newManagerFixture()
	b := newBusiness("b1", "Finca Uno", "u1")
	f.businesses.add(b)
	f.roles.byUser["u1"] = []*entity.BusinessRole{binding("u1", "b1", entity.RoleOwner)}

	_, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})
	require.NoError(t, err)

	newName := "Finca Renombrada"
	updated, err := f.mgr.UpdateBusinessSettings(context.Background(), "u1", "b1",
		entity.BusinessUpdate{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, "Finca Renombrada", updated.Name)
	assert.Equal(t, "Vereda La Esperanza", updated.Address, "campo no provisto se conserva")
	assert.Equal(t, entity.PaymentModelPercentage, updated.PaymentModelType)
	assert.True(t, decimal.NewFromInt(15).Equal(updated.PaymentModelAmount))

	snap, _ := f.mgr.Snapshot("u1")
	assert.Equal(t, "Finca Renombrada", snap.Active.Name, "actualización optimista en memoria")
}

// Solo el creador puede actualizar la configuración.
func TestUpdateBusinessSettings_SoloCreador(t *testing.T) {
	f := newManagerFixture()
	f.businesses.add(newBusiness("b1", "Finca Uno", "otro-dueño"))
	f.roles.byUser["u1"] = []*entity.BusinessRole{binding("u1", "b1", entity.RoleOwner)}

	_, err := f.mgr.SignIn(context.Background(), session.AuthUser{ID: "u1"})
	require.NoError(t, err)

	name := "X"
	_, err = f.mgr.UpdateBusinessSettings(context.Background(), "u1", "b1",
		entity.BusinessUpdate{Name: &name})
	assert.True(t, errors.Is(err, domain.ErrNotAuthorized))
}
