package console

import (
	"net/http"

	"github.com/golang/glog"
	"github.com/krancour/yuadmin/internal/session"
)

const loginScreen = `YU Admin

Para entrar, abra esta consola através do serviço de autenticação, que a
devolve com ?token= no endereço.
`

// login serves the internal login screen. A token that arrives here is
// bootstrapped like on any other route.
func (s *server) login(w http.ResponseWriter, r *http.Request) {
	if _, ok := r.URL.Query()[session.TokenParam]; ok {
		_, res := s.guard.bootstrap(w, r)
		if res.State == session.StateAuthenticated {
			http.Redirect(w, r, res.Redirect, http.StatusSeeOther)
			return
		}
		if res.State == session.StateExternalLoginRequired {
			http.Redirect(w, r, res.Redirect, http.StatusFound)
			return
		}
	}
	s.serveHumanRequest(
		humanRequest{
			w:           w,
			body:        loginScreen,
			successCode: http.StatusOK,
		},
	)
}

// logout forgets the operator's session and sends them to the login target.
// Other operators' sessions are left alone.
func (s *server) logout(w http.ResponseWriter, r *http.Request) {
	if store := s.guard.store(r); store != nil {
		if err := store.Clear(r.Context()); err != nil {
			glog.Errorf(
				"[%s] error clearing session: %s",
				requestIDFromContext(r.Context()),
				err,
			)
			s.writeResponse(
				w,
				http.StatusInternalServerError,
				errorBody{Msg: "Erro ao terminar a sessão."},
			)
			return
		}
	}
	s.guard.expireSessionCookie(w)
	http.Redirect(w, r, s.loginURL(), http.StatusFound)
}

func (s *server) loginURL() string {
	if s.guard.config.LoginTarget == session.LoginTargetExternal {
		return s.guard.config.ExternalLoginURL
	}
	return s.guard.config.InternalLoginPath
}
